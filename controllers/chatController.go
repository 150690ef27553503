package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
)

func Chat(c *gin.Context) {
	var input models.ChatRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := services.GetChatService().Reply(c, input.History, input.Message)
	if errors.Is(err, services.ErrChatUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat assistant is not available"})
		return
	}
	if err != nil {
		initializers.Log.Errorw("chat reply failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get a reply", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply": models.ChatMessage{Role: models.ChatRoleModel, Content: reply},
	})
}
