package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/services"
)

// SendWeeklyReport emails last week's summary now instead of waiting for
// the Monday schedule.
func SendWeeklyReport(c *gin.Context) {
	report, err := services.SendWeeklyReport(c, time.Now().In(initializers.Location()))
	if err != nil {
		initializers.Log.Errorw("weekly report failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send weekly report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Weekly report sent.",
		"report":  report,
	})
}
