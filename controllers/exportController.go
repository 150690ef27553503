package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
	"github.com/FamilyQT/stats"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendWorkbook(c *gin.Context, filename string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func ExportRecords(c *gin.Context) {
	records, ok := loadAllRecords(c)
	if !ok {
		return
	}
	records = stats.FilterByUsers(records, c.DefaultQuery("users", "all"))

	var buf bytes.Buffer
	if err := services.WriteRecordsWorkbook(&buf, records); err != nil {
		initializers.Log.Errorw("records export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return
	}

	sendWorkbook(c, "qt_records.xlsx", &buf)
}

func ExportAttendance(c *gin.Context) {
	date, err := attendanceDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
		return
	}

	var records []models.AttendanceRecord
	err = initializers.DB.From("attendance").
		Where(goqu.C("date").Eq(date.Format(models.DateLayout))).
		Order(goqu.C("user_name").Asc()).
		ScanStructsContext(c, &records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance", "details": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := services.WriteAttendanceWorkbook(&buf, records); err != nil {
		initializers.Log.Errorw("attendance export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return
	}

	sendWorkbook(c, fmt.Sprintf("attendance_%s.xlsx", date.Format(models.DateLayout)), &buf)
}
