package middlewares

import (
	"net/http"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
)

// BlockDuringMaintenance rejects member writes while maintenance is active.
// A failed status lookup lets the request through.
func BlockDuringMaintenance(c *gin.Context) {
	var status models.SystemStatus
	found, err := initializers.DB.From("system_status").
		Where(goqu.C("status_key").Eq(models.MaintenanceStatusKey)).
		ScanStructContext(c.Request.Context(), &status)
	if err != nil {
		initializers.Log.Warnw("maintenance lookup failed", "error", err)
		c.Next()
		return
	}

	now := time.Now()
	if found && status.Is_Active && !status.Scheduled(now) && (status.Ends_At == nil || status.Ends_At.After(now)) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":       "The service is under maintenance",
			"maintenance": status,
		})
		return
	}

	c.Next()
}
