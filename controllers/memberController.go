package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
	"github.com/FamilyQT/stats"
)

// GetMembers lists active family members in Korean name order.
func GetMembers(c *gin.Context) {
	members := []models.FamilyMember{}
	err := initializers.DB.From("family_member").
		Where(goqu.C("is_active").IsTrue()).
		ScanStructsContext(c, &members)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members", "details": err.Error()})
		return
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	stats.SortNames(names)

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"names":   names,
	})
}

func CreateMember(c *gin.Context) {
	var input models.FamilyMemberCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	count, err := initializers.DB.From("family_member").
		Where(goqu.C("name").Eq(name), goqu.C("is_active").IsTrue()).
		CountContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "member already exists."})
		return
	}

	newMember := models.FamilyMember{
		Name:          name,
		Campus:        input.Campus,
		Family_Leader: input.Family_Leader,
	}

	var memberID int
	_, err = initializers.DB.Insert("family_member").
		Rows(newMember).
		Returning("id").
		Executor().ScanValContext(c, &memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member", "details": err.Error()})
		return
	}

	services.PublishChange(services.TableMembers, services.EventInsert)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Member created successfully.",
		"memberId": memberID,
	})
}

// DeleteMember deactivates a member; their records stay.
func DeleteMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID", "details": err.Error()})
		return
	}

	result, err := initializers.DB.Update("family_member").
		Set(goqu.Record{"is_active": false}).
		Where(goqu.C("id").Eq(memberID)).
		Executor().ExecContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member", "details": err.Error()})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	services.PublishChange(services.TableMembers, services.EventDelete)

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully."})
}
