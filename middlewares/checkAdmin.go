package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func CheckAdmin(c *gin.Context) {
	isAdmin := c.GetBool("admin")

	if !isAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
}

// CheckLeader lets family leaders and admins through.
func CheckLeader(c *gin.Context) {
	role := c.GetString("role")

	if role != RoleLeader && role != RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "family leader access required"})
		return
	}
}
