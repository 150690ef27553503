package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
)

// attendanceDate reads the date query value, defaulting to today in the
// configured timezone.
func attendanceDate(c *gin.Context) (time.Time, error) {
	if raw := c.Query("date"); raw != "" {
		return parseDate(raw)
	}
	return parseDate(time.Now().In(initializers.Location()).Format(models.DateLayout))
}

func GetAttendance(c *gin.Context) {
	date, err := attendanceDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
		return
	}

	query := initializers.DB.From("attendance").
		Where(goqu.C("date").Eq(date.Format(models.DateLayout))).
		Order(goqu.C("user_name").Asc())
	if campus := c.Query("campus"); campus != "" {
		query = query.Where(goqu.C("campus").Eq(campus))
	}

	records := []models.AttendanceRecord{}
	if err := query.ScanStructsContext(c, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance", "details": err.Error()})
		return
	}

	present := 0
	for _, r := range records {
		if r.Is_Present {
			present++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date.Format(models.DateLayout),
		"attendance": records,
		"present":    present,
		"total":      len(records),
	})
}

// SaveAttendance upserts one attendance row per member for the given date.
// Campus and family leader are copied from the member list.
func SaveAttendance(c *gin.Context) {
	var input models.AttendanceBulkRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
		return
	}

	// one row per name: a single upsert cannot touch the same key twice,
	// so the last entry for a name wins
	latest := make(map[string]int, len(input.Members))
	names := make([]string, 0, len(input.Members))
	for i, m := range input.Members {
		if _, ok := latest[m.Name]; !ok {
			names = append(names, m.Name)
		}
		latest[m.Name] = i
	}

	var members []models.FamilyMember
	err = initializers.DB.From("family_member").
		Where(goqu.C("name").In(names)).
		ScanStructsContext(c, &members)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch family members", "details": err.Error()})
		return
	}
	byName := make(map[string]models.FamilyMember, len(members))
	for _, m := range members {
		byName[m.Name] = m
	}

	rows := make([]interface{}, 0, len(names))
	for _, name := range names {
		m := input.Members[latest[name]]
		row := models.AttendanceRecord{
			User_Name:  m.Name,
			Date:       date,
			Is_Present: m.IsPresent,
		}
		if m.Note != "" {
			note := m.Note
			row.Note = &note
		}
		if member, ok := byName[m.Name]; ok {
			row.Campus = member.Campus
			row.Family_Leader = member.Family_Leader
		}
		rows = append(rows, row)
	}

	_, err = initializers.DB.Insert("attendance").
		Rows(rows...).
		OnConflict(goqu.DoUpdate("user_name, date", goqu.Record{
			"is_present":    goqu.L("EXCLUDED.is_present"),
			"note":          goqu.L("EXCLUDED.note"),
			"campus":        goqu.L("EXCLUDED.campus"),
			"family_leader": goqu.L("EXCLUDED.family_leader"),
			"updated_at":    goqu.L("NOW()"),
		})).
		Executor().ExecContext(c)
	if err != nil {
		initializers.Log.Errorw("failed to save attendance", "date", input.Date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attendance", "details": err.Error()})
		return
	}

	services.PublishChange(services.TableAttendance, services.EventUpdate)

	c.JSON(http.StatusOK, gin.H{
		"message": "Attendance saved.",
		"saved":   len(rows),
	})
}

func UpdateAttendance(c *gin.Context) {
	attendanceID, err := strconv.Atoi(c.Param("attendance_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attendance ID", "details": err.Error()})
		return
	}

	var input models.AttendanceUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := goqu.Record{}
	if input.Is_Present != nil {
		record["is_present"] = *input.Is_Present
	}
	if input.Note != nil {
		record["note"] = *input.Note
	}
	if len(record) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	record["updated_at"] = time.Now()

	result, err := initializers.DB.Update("attendance").
		Set(record).
		Where(goqu.C("id").Eq(attendanceID)).
		Executor().ExecContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update attendance", "details": err.Error()})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attendance record not found"})
		return
	}

	services.PublishChange(services.TableAttendance, services.EventUpdate)

	c.JSON(http.StatusOK, gin.H{"message": "Attendance updated."})
}
