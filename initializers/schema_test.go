package initializers

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	t.Run("runs every statement in order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for range schema {
			mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, Migrate(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS qt_records").WillReturnError(errors.New("permission denied"))

		err = Migrate(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CREATE TABLE IF NOT EXISTS qt_records")
		assert.Contains(t, err.Error(), "permission denied")
	})
}
