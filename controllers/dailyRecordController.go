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
	"github.com/FamilyQT/stats"
)

// GetRecords lists every record newest first, or the records inside
// [start, end] and/or for one user ordered by date.
func GetRecords(c *gin.Context) {
	query := initializers.DB.From("qt_records")

	start, end, user := c.Query("start"), c.Query("end"), c.Query("user")
	filtered := false

	if start != "" {
		startDate, err := parseDate(start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date", "details": err.Error()})
			return
		}
		query = query.Where(goqu.C("date").Gte(startDate.Format(models.DateLayout)))
		filtered = true
	}
	if end != "" {
		endDate, err := parseDate(end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date", "details": err.Error()})
			return
		}
		query = query.Where(goqu.C("date").Lte(endDate.Format(models.DateLayout)))
		filtered = true
	}
	if user != "" {
		query = query.Where(goqu.C("user_name").Eq(user))
		filtered = true
	}

	if filtered {
		query = query.Order(goqu.C("date").Desc())
	} else {
		query = query.Order(goqu.C("created_at").Desc())
	}

	records := []models.DailyRecord{}
	if err := query.ScanStructsContext(c, &records); err != nil {
		initializers.Log.Errorw("failed to fetch records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func LookupRecord(c *gin.Context) {
	user := c.Query("user")
	date, err := parseDate(c.Query("date"))
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user and a YYYY-MM-DD date are required"})
		return
	}

	var record models.DailyRecord
	found, err := initializers.DB.From("qt_records").
		Where(
			goqu.C("user_name").Eq(user),
			goqu.C("date").Eq(date.Format(models.DateLayout)),
		).
		ScanStructContext(c, &record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch record", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpsertRecord writes the record for (userName, date); an existing record
// for the same pair is overwritten.
func UpsertRecord(c *gin.Context) {
	var input models.DailyRecordUpsert
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record", "details": err.Error()})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
		return
	}

	row := models.DailyRecord{
		User_Name:        input.User_Name,
		Date:             date,
		Qt_Count:         input.Qt_Count,
		Bible_Read_Count: input.Bible_Read_Count,
		Qt_Done:          input.Qt_Done,
		Bible_Read_Done:  input.Bible_Read_Done,
		Writing_Done:     input.Writing_Done,
	}

	insert := initializers.DB.Insert("qt_records").
		Rows(row).
		OnConflict(goqu.DoUpdate("user_name, date", goqu.Record{
			"qt_count":         goqu.L("EXCLUDED.qt_count"),
			"bible_read_count": goqu.L("EXCLUDED.bible_read_count"),
			"qt_done":          goqu.L("EXCLUDED.qt_done"),
			"bible_read_done":  goqu.L("EXCLUDED.bible_read_done"),
			"writing_done":     goqu.L("EXCLUDED.writing_done"),
			"updated_at":       goqu.L("NOW()"),
		})).
		Returning(goqu.Star())

	var saved models.DailyRecord
	if _, err := insert.Executor().ScanStructContext(c, &saved); err != nil {
		initializers.Log.Errorw("failed to save record", "user", input.User_Name, "date", input.Date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save record", "details": err.Error()})
		return
	}

	services.PublishChange(services.TableQtRecords, services.EventUpdate)

	c.JSON(http.StatusOK, gin.H{
		"message": "Record saved successfully.",
		"record":  saved,
	})
}

func DeleteRecord(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("record_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID", "details": err.Error()})
		return
	}

	result, err := initializers.DB.Delete("qt_records").
		Where(goqu.C("id").Eq(recordID)).
		Executor().ExecContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record", "details": err.Error()})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	services.PublishChange(services.TableQtRecords, services.EventDelete)

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully."})
}

type homeTotals struct {
	QtTotal    int `db:"qt_total" json:"qtTotal"`
	BibleTotal int `db:"bible_total" json:"bibleTotal"`
}

// GetHomeTotals sums qt and bible counts over every record.
func GetHomeTotals(c *gin.Context) {
	var totals homeTotals
	_, err := initializers.DB.From("qt_records").
		Select(
			goqu.COALESCE(goqu.SUM("qt_count"), 0).As("qt_total"),
			goqu.COALESCE(goqu.SUM("bible_read_count"), 0).As("bible_total"),
		).
		ScanStructContext(c, &totals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch totals", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, totals)
}

// GetTemperatures reports each member's devotional temperature and the
// community average.
func GetTemperatures(c *gin.Context) {
	var records []models.DailyRecord
	err := initializers.DB.From("qt_records").
		Select("user_name", "qt_count", "bible_read_count").
		ScanStructsContext(c, &records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records", "details": err.Error()})
		return
	}

	temps := stats.UserTemperatures(records)
	average := 0.0
	if len(temps) > 0 {
		sum := 0.0
		for _, t := range temps {
			sum += t.TotalTemp
		}
		average = sum / float64(len(temps))
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       temps,
		"average":     average,
		"averageBand": stats.BandFor(average),
		"computedAt":  time.Now(),
	})
}
