package controllers

import (
	"net/http"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
)

func GetMaintenanceStatus(c *gin.Context) {
	var status models.SystemStatus
	found, err := initializers.DB.From("system_status").
		Where(goqu.C("status_key").Eq(models.MaintenanceStatusKey)).
		ScanStructContext(c, &status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenance status", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"isMaintenance": false, "scheduled": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isMaintenance": status.Is_Active,
		"message":       status.Message,
		"startsAt":      status.Starts_At,
		"endsAt":        status.Ends_At,
		"scheduled":     status.Scheduled(time.Now()),
	})
}

func SetMaintenanceStatus(c *gin.Context) {
	var input models.MaintenanceUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Starts_At != nil && input.Ends_At != nil && input.Ends_At.Before(*input.Starts_At) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endsAt must not be before startsAt"})
		return
	}

	status := models.SystemStatus{
		Status_Key: models.MaintenanceStatusKey,
		Is_Active:  *input.Is_Active,
		Message:    input.Message,
		Starts_At:  input.Starts_At,
		Ends_At:    input.Ends_At,
	}

	_, err := initializers.DB.Insert("system_status").
		Rows(status).
		OnConflict(goqu.DoUpdate("status_key", goqu.Record{
			"is_active":  goqu.L("EXCLUDED.is_active"),
			"message":    goqu.L("EXCLUDED.message"),
			"starts_at":  goqu.L("EXCLUDED.starts_at"),
			"ends_at":    goqu.L("EXCLUDED.ends_at"),
			"updated_at": goqu.L("NOW()"),
		})).
		Executor().ExecContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update maintenance status", "details": err.Error()})
		return
	}

	initializers.Log.Infow("maintenance status changed", "active", status.Is_Active)
	services.PublishChange(services.TableSystemStatus, services.EventUpdate)
	go services.NotifyMaintenance(status)

	c.JSON(http.StatusOK, gin.H{
		"message": "Maintenance status updated.",
		"status":  status,
	})
}
