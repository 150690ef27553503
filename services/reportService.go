package services

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/stats"
)

type ReportRow struct {
	UserName string `json:"userName"`
	stats.UserSummary
}

type WeeklyReport struct {
	Start   string             `json:"start"`
	End     string             `json:"end"`
	Totals  stats.TotalCounts  `json:"totals"`
	Prayers stats.PrayerCounts `json:"prayers"`
	Rows    []ReportRow        `json:"rows"`
}

// BuildWeeklyReport summarizes already-fetched records and prayers.
func BuildWeeklyReport(start, end time.Time, records []models.DailyRecord, prayers []models.PrayerRequest) WeeklyReport {
	perUser := stats.UserStats(records)
	report := WeeklyReport{
		Start:   start.Format(models.DateLayout),
		End:     end.Format(models.DateLayout),
		Totals:  stats.Totals(records),
		Prayers: stats.PrayerStats(prayers),
	}
	for _, name := range stats.UserList(records) {
		report.Rows = append(report.Rows, ReportRow{UserName: name, UserSummary: perUser[name]})
	}
	return report
}

// ReportWindow is the seven days ending yesterday, relative to now.
func ReportWindow(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	return end.AddDate(0, 0, -6), end
}

func LoadWeeklyReport(ctx context.Context, now time.Time) (WeeklyReport, error) {
	start, end := ReportWindow(now)

	var records []models.DailyRecord
	err := initializers.DB.From("qt_records").
		Where(
			goqu.C("date").Gte(start.Format(models.DateLayout)),
			goqu.C("date").Lte(end.Format(models.DateLayout)),
		).
		Order(goqu.C("date").Desc()).
		ScanStructsContext(ctx, &records)
	if err != nil {
		return WeeklyReport{}, fmt.Errorf("load records: %w", err)
	}

	var prayers []models.PrayerRequest
	err = initializers.DB.From("prayers").
		Where(
			goqu.C("created_at").Gte(start),
			goqu.C("created_at").Lt(end.AddDate(0, 0, 1)),
		).
		ScanStructsContext(ctx, &prayers)
	if err != nil {
		return WeeklyReport{}, fmt.Errorf("load prayers: %w", err)
	}

	return BuildWeeklyReport(start, end, records, prayers), nil
}

func SendWeeklyReport(ctx context.Context, now time.Time) (WeeklyReport, error) {
	report, err := LoadWeeklyReport(ctx, now)
	if err != nil {
		return WeeklyReport{}, err
	}
	if err := GetEmailService().SendWeeklyReport(ReportRecipients(), report); err != nil {
		return report, err
	}
	return report, nil
}

// StartReportScheduler emails the weekly report every Monday at 09:00 in loc.
func StartReportScheduler(ctx context.Context, loc *time.Location) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				now := t.In(loc)
				if now.Weekday() != time.Monday || now.Hour() != 9 || now.Minute() != 0 {
					continue
				}
				initializers.Log.Info("sending scheduled weekly report")
				if _, err := SendWeeklyReport(ctx, now); err != nil {
					initializers.Log.Errorw("scheduled weekly report failed", "error", err)
				}
			}
		}
	}()
}
