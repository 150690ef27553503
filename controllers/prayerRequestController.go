package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
	"github.com/FamilyQT/stats"
)

func CreatePrayerRequest(c *gin.Context) {
	var input models.PrayerRequestCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userName and content are required", "details": err.Error()})
		return
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userName and content are required"})
		return
	}

	newPrayer := models.PrayerRequest{
		User_Name: input.User_Name,
		Content:   content,
	}

	var saved models.PrayerRequest
	_, err := initializers.DB.Insert("prayers").
		Rows(newPrayer).
		Returning(goqu.Star()).
		Executor().ScanStructContext(c, &saved)
	if err != nil {
		initializers.Log.Errorw("failed to create prayer request", "user", input.User_Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer request", "details": err.Error()})
		return
	}

	services.PublishChange(services.TablePrayers, services.EventInsert)
	go services.NotifyPrayerRequest(saved)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Prayer request submitted.",
		"prayer":  saved,
	})
}

// GetPrayerRequests lists prayer requests newest first, optionally limited
// to the selected users.
func GetPrayerRequests(c *gin.Context) {
	selection := c.DefaultQuery("users", "all")

	prayers := []models.PrayerRequest{}
	err := initializers.DB.From("prayers").
		Order(goqu.C("created_at").Desc()).
		ScanStructsContext(c, &prayers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer requests", "details": err.Error()})
		return
	}

	filtered := stats.FilterPrayersByUsers(prayers, selection)
	if filtered == nil {
		filtered = []models.PrayerRequest{}
	}

	c.JSON(http.StatusOK, gin.H{
		"prayers": filtered,
		"stats":   stats.PrayerStats(filtered),
	})
}

func SetPrayerAnswered(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID", "details": err.Error()})
		return
	}

	var input models.PrayerAnsweredUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := goqu.Record{"is_answered": *input.Is_Answered, "answered_at": nil}
	if *input.Is_Answered {
		record["answered_at"] = time.Now()
	}

	result, err := initializers.DB.Update("prayers").
		Set(record).
		Where(goqu.C("id").Eq(prayerID)).
		Executor().ExecContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer request", "details": err.Error()})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	services.PublishChange(services.TablePrayers, services.EventUpdate)

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request updated."})
}

func DeletePrayerRequest(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID", "details": err.Error()})
		return
	}

	result, err := initializers.DB.Delete("prayers").
		Where(goqu.C("id").Eq(prayerID)).
		Executor().ExecContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request", "details": err.Error()})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	services.PublishChange(services.TablePrayers, services.EventDelete)

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted."})
}
