package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPing(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/ping", nil)
	Ping(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)

	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection refused"))

	c, w = SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/ping", nil)
	Ping(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
