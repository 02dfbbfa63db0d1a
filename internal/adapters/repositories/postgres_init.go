package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for the quote cache and preference store.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createQuoteCacheQuery := `
	CREATE TABLE IF NOT EXISTS quote_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		travel_date TEXT NOT NULL,
		position INTEGER NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		airline TEXT NOT NULL,
		departure TEXT NOT NULL,
		arrival TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		emissions_kg DOUBLE PRECISION NOT NULL,
		flight_number TEXT NOT NULL,
		deep_link TEXT NOT NULL,
		PRIMARY KEY (origin, destination, travel_date, position)
	);
	`

	createPreferencesQuery := `
	CREATE TABLE IF NOT EXISTS preferences (
		owner TEXT NOT NULL,
		category TEXT NOT NULL,
		key TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (owner, category, key)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_quote_cache_route_date
	ON quote_cache(origin, destination, travel_date);
	`

	statements := []string{
		createQuoteCacheQuery,
		createPreferencesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
