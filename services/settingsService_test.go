package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FamilyQT/initializers"
)

func TestSetFamilyPasswordStoresHash(t *testing.T) {
	var captured string
	matcher := sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
		captured = actualSQL
		if !strings.Contains(actualSQL, `INSERT INTO "app_settings"`) {
			return errors.New("unexpected statement")
		}
		return nil
	})

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	defer db.Close()

	original := initializers.DB
	initializers.DB = goqu.New("postgres", db)
	defer func() { initializers.DB = original }()

	mock.ExpectExec("app_settings").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, SetFamilyPassword(context.Background(), "2026"))

	assert.NotContains(t, captured, "'2026'")
	assert.Contains(t, captured, "$2a$")
	assert.Contains(t, captured, "ON CONFLICT (setting_key) DO UPDATE")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetFamilyPasswordWrapsDatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	original := initializers.DB
	initializers.DB = goqu.New("postgres", db)
	defer func() { initializers.DB = original }()

	mock.ExpectExec("INSERT").WillReturnError(errors.New("read-only transaction"))

	err = SetFamilyPassword(context.Background(), "2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store family password")
}
