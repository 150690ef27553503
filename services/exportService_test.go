package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FamilyQT/models"
)

func TestWriteRecordsWorkbook(t *testing.T) {
	records := []models.DailyRecord{
		{User_Name: "가온", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Qt_Count: 2, Bible_Read_Count: 3, Qt_Done: true},
		{User_Name: "나영", Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Writing_Done: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecordsWorkbook(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(recordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "날짜", rows[0][0])
	assert.Equal(t, []string{"2025-03-01", "가온", "2", "3", "O", "X", "X"}, rows[1])
	assert.Equal(t, []string{"2025-03-02", "나영", "0", "0", "X", "X", "O"}, rows[2])
}

func TestWriteAttendanceWorkbook(t *testing.T) {
	campus := "찬양"
	records := []models.AttendanceRecord{
		{User_Name: "가온", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Is_Present: true, Campus: &campus},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAttendanceWorkbook(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(attendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2025-03-01", "가온", "O", "찬양"}, rows[1])
}
