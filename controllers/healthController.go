package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/services"
)

func Ping(c *gin.Context) {
	var one int
	if _, err := initializers.DB.ScanValContext(c, &one, "SELECT 1"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "pong", "database": "unreachable", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "pong",
		"database":        "ok",
		"realtimeClients": services.GetRealtimeHub().Count(),
	})
}
