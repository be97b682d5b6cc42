package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate re-adding a column: "duplicate column name" on SQLite,
			// "already exists" on Postgres.
			msg := err.Error()
			if strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Dates are stored as YYYY-MM-DD text, timestamps as RFC3339 text, booleans
// as 0/1 integers, hours as 64-bit floats. The same DDL runs on SQLite and
// Postgres.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		client_id          TEXT NOT NULL DEFAULT '',
		start_date         TEXT NOT NULL,
		end_date           TEXT,
		continuous         INTEGER NOT NULL DEFAULT 0,
		estimated_hours    DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK(estimated_hours >= 0),
		pre_phase_end_date TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		hours       DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK(hours >= 0),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id)`,

	`CREATE TABLE IF NOT EXISTS recurring_estimates (
		id                   TEXT PRIMARY KEY,
		project_id           TEXT NOT NULL UNIQUE REFERENCES projects(id) ON DELETE CASCADE,
		pattern              TEXT NOT NULL CHECK(pattern IN ('daily','weekly','monthly')),
		interval_n           INTEGER NOT NULL DEFAULT 1,
		weekdays             TEXT NOT NULL DEFAULT '',
		day_of_month         INTEGER NOT NULL DEFAULT 0,
		hours_per_occurrence DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK(hours_per_occurrence >= 0),
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS calendar_events (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL DEFAULT '',
		start_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		project_id TEXT REFERENCES projects(id) ON DELETE SET NULL,
		completed  INTEGER NOT NULL DEFAULT 0,
		type       TEXT NOT NULL DEFAULT 'planned'
		           CHECK(type IN ('planned','tracked','completed')),
		category   TEXT NOT NULL DEFAULT 'event'
		           CHECK(category IN ('event','habit','task')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_project ON calendar_events(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start ON calendar_events(start_at)`,

	`CREATE TABLE IF NOT EXISTS work_slots (
		weekday   INTEGER NOT NULL CHECK(weekday BETWEEN 0 AND 6),
		start_min INTEGER NOT NULL CHECK(start_min >= 0),
		end_min   INTEGER NOT NULL CHECK(end_min <= 1440),
		PRIMARY KEY (weekday, start_min)
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		recurring  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date)`,

	// Added after the first release.
	`ALTER TABLE projects ADD COLUMN color TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE calendar_events ADD COLUMN original_event_id TEXT`,
}
