package initializers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS qt_records (
		id SERIAL PRIMARY KEY,
		user_name TEXT NOT NULL,
		date DATE NOT NULL,
		qt_count INTEGER NOT NULL DEFAULT 0 CHECK (qt_count >= 0),
		bible_read_count INTEGER NOT NULL DEFAULT 0 CHECK (bible_read_count >= 0),
		qt_done BOOLEAN NOT NULL DEFAULT FALSE,
		bible_read_done BOOLEAN NOT NULL DEFAULT FALSE,
		writing_done BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_name, date)
	);`,
	`CREATE TABLE IF NOT EXISTS prayers (
		id SERIAL PRIMARY KEY,
		user_name TEXT NOT NULL,
		content TEXT NOT NULL,
		is_answered BOOLEAN NOT NULL DEFAULT FALSE,
		answered_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS family_member (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		campus TEXT,
		family_leader TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id SERIAL PRIMARY KEY,
		user_name TEXT NOT NULL,
		date DATE NOT NULL,
		is_present BOOLEAN NOT NULL DEFAULT FALSE,
		note TEXT,
		campus TEXT,
		family_leader TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_name, date)
	);`,
	`CREATE TABLE IF NOT EXISTS app_settings (
		setting_key TEXT PRIMARY KEY,
		setting_value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS system_status (
		status_key TEXT PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		message TEXT NOT NULL DEFAULT '',
		starts_at TIMESTAMPTZ,
		ends_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS user_profile (
		user_profile_id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		admin BOOLEAN NOT NULL DEFAULT FALSE,
		datetime_create TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		datetime_update TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS user_push_tokens (
		user_push_tokens_id SERIAL PRIMARY KEY,
		user_profile_id INTEGER NOT NULL REFERENCES user_profile(user_profile_id),
		push_token TEXT NOT NULL UNIQUE,
		platform TEXT NOT NULL DEFAULT 'web',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`INSERT INTO system_status (status_key) VALUES ('maintenance_mode') ON CONFLICT DO NOTHING;`,
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Migrate creates every table the service needs. Statements are idempotent.
func Migrate(ctx context.Context, db execer) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(stmt), "\n")
	return line
}
