package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS buildings (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    building_code TEXT NOT NULL UNIQUE,
    campus TEXT NOT NULL,
    civic_address TEXT,
    longitude REAL NOT NULL,
    latitude REAL NOT NULL
);

-- one stop per campus, named after the campus code
CREATE TABLE IF NOT EXISTS shuttle_stops (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    longitude REAL NOT NULL,
    latitude REAL NOT NULL
);

-- day_of_week: Monday = 0; departure_minute: minutes after midnight, local time
CREATE TABLE IF NOT EXISTS shuttle_schedule (
    id INTEGER PRIMARY KEY,
    campus TEXT NOT NULL,
    day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
    departure_minute INTEGER NOT NULL CHECK (departure_minute BETWEEN 0 AND 1439)
);
`

type migration struct {
	version     int
	description string
	apply       func(tx *sql.Tx) error
}

// New migrations are appended; existing entries never change.
var migrations = []migration{
	{
		version:     1,
		description: "initial schema",
		apply:       func(tx *sql.Tx) error { return nil },
	},
	{
		version:     2,
		description: "index departures by campus and day",
		apply: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_schedule_campus_day
				ON shuttle_schedule (campus, day_of_week, departure_minute)`)
			return err
		},
	},
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d (%s): %w", m.version, m.description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version, description) VALUES (?, ?)`, m.version, m.description); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}
		log.Printf("Applied migration %d: %s", m.version, m.description)
	}

	return nil
}
