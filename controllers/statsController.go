package controllers

import (
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/stats"
)

func loadAllRecords(c *gin.Context) ([]models.DailyRecord, bool) {
	var records []models.DailyRecord
	err := initializers.DB.From("qt_records").
		Order(goqu.C("date").Desc()).
		ScanStructsContext(c, &records)
	if err != nil {
		initializers.Log.Errorw("failed to fetch records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records", "details": err.Error()})
		return nil, false
	}
	return records, true
}

// GetFamilyStats returns the member list plus per-member and range totals
// for the selected users ("all" or a comma separated list).
func GetFamilyStats(c *gin.Context) {
	selection := c.DefaultQuery("users", "all")

	records, ok := loadAllRecords(c)
	if !ok {
		return
	}

	var prayers []models.PrayerRequest
	if err := initializers.DB.From("prayers").ScanStructsContext(c, &prayers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers", "details": err.Error()})
		return
	}

	filtered := stats.FilterByUsers(records, selection)

	c.JSON(http.StatusOK, gin.H{
		"users":     stats.UserList(records),
		"userStats": stats.UserStats(filtered),
		"totals":    stats.Totals(filtered),
		"summary":   stats.Summarize(filtered),
		"prayers":   stats.PrayerStats(stats.FilterPrayersByUsers(prayers, selection)),
	})
}

func GetWeeklyStats(c *gin.Context) {
	selection := c.DefaultQuery("users", "all")

	records, ok := loadAllRecords(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weeks": stats.WeeklyBreakdown(stats.FilterByUsers(records, selection)),
	})
}
