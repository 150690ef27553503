package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FamilyQT/models"
)

const (
	recordsSheet    = "QT 기록"
	attendanceSheet = "출석"
)

func yesNo(b bool) string {
	if b {
		return "O"
	}
	return "X"
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecordsWorkbook writes daily records as an xlsx workbook.
func WriteRecordsWorkbook(w io.Writer, records []models.DailyRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []string{"날짜", "이름", "큐티 횟수", "말씀 장수", "큐티 완료", "말씀 완료", "필사 완료"}
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Date.Format(models.DateLayout),
			r.User_Name,
			r.Qt_Count,
			r.Bible_Read_Count,
			yesNo(r.Qt_Done),
			yesNo(r.Bible_Read_Done),
			yesNo(r.Writing_Done),
		})
	}

	if err := writeSheet(f, recordsSheet, header, rows); err != nil {
		return fmt.Errorf("build records workbook: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write records workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteAttendanceWorkbook writes attendance rows as an xlsx workbook.
func WriteAttendanceWorkbook(w io.Writer, records []models.AttendanceRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []string{"날짜", "이름", "출석", "캠퍼스", "가족장", "비고"}
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Date.Format(models.DateLayout),
			r.User_Name,
			yesNo(r.Is_Present),
			deref(r.Campus),
			deref(r.Family_Leader),
			deref(r.Note),
		})
	}

	if err := writeSheet(f, attendanceSheet, header, rows); err != nil {
		return fmt.Errorf("build attendance workbook: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write attendance workbook: %w", err)
	}
	return nil
}
