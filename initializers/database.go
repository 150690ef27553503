package initializers

import (
	"database/sql"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
)

var DB *goqu.Database

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		Log.Fatalw("failed to open database", "error", err)
	}

	err = db.Ping()
	if err != nil {
		Log.Fatalw("failed to reach database", "error", err)
	}

	DB = goqu.New("postgres", db)
}
