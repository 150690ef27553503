package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportRecords(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").WillReturnRows(recordRows(MockRecords()...))

	c, w := SetupTestContext()
	SetLeader(c)
	c.Request = httptest.NewRequest("GET", "/family/records/export?users=%EC%9D%B4%ED%95%98%EB%82%98", nil)

	ExportRecords(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "qt_records.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("QT 기록")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "이하나", rows[1][1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportAttendance(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`"date" = '2025-03-02'`).WillReturnRows(attendanceRows())

	c, w := SetupTestContext()
	SetLeader(c)
	c.Request = httptest.NewRequest("GET", "/family/attendance/export?date=2025-03-02", nil)

	ExportAttendance(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_2025-03-02.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("출석")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2025-03-02", "김민수", "O", "서울", "박가족"}, rows[1])
	assert.Equal(t, "출장", rows[2][5])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportAttendanceInvalidDate(t *testing.T) {
	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/family/attendance/export?date=someday", nil)

	ExportAttendance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
