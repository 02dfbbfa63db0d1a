package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reunion-route-service/internal/domain"
)

// SQLite backed cache for route quote lookups, used for local/offline runs.
// Same row shape as the Postgres cache, SQLite placeholder dialect.
type SqliteQuoteCache struct {
	DB *sql.DB
}

func NewSqliteQuoteCache(db *sql.DB) *SqliteQuoteCache {
	return &SqliteQuoteCache{DB: db}
}

// Fetch cached quotes for one route and travel date, in option order.
func (s *SqliteQuoteCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	travelDate time.Time,
) ([]domain.FlightQuote, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("quote cache: db is nil")
	}

	if origin == "" || destination == "" {
		return nil, false, errors.New("get quote cache: origin and destination must not be empty")
	}

	q := `
	SELECT price, airline, departure, arrival, duration_minutes, emissions_kg, flight_number, deep_link
	FROM quote_cache
	WHERE origin = ?
		AND destination = ?
		AND travel_date = ?
	ORDER BY position;
	`

	rows, err := s.DB.QueryContext(ctx, q, origin, destination, travelDate.Format("2006-01-02"))
	if err != nil {
		return nil, false, fmt.Errorf("get quote cache: query quote_cache table: %w", err)
	}
	defer rows.Close()

	out, err := scanQuoteRows(rows)
	if err != nil {
		return nil, false, fmt.Errorf("get quote cache: %w", err)
	}

	return out, len(out) > 0, nil
}

// Store quotes for one route and travel date, replacing any previous entry.
func (s *SqliteQuoteCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	travelDate time.Time,
	quotes []domain.FlightQuote,
) error {
	if s.DB == nil {
		return errors.New("quote cache: db is nil")
	}

	if origin == "" || destination == "" {
		return errors.New("insert quote cache: origin and destination must not be empty")
	}

	if len(quotes) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert quote cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	date := travelDate.Format("2006-01-02")

	if _, err := tx.ExecContext(ctx, `
	DELETE FROM quote_cache
	WHERE origin = ? AND destination = ? AND travel_date = ?;
	`, origin, destination, date); err != nil {
		return fmt.Errorf("insert quote cache: delete stale entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO quote_cache (
		origin, destination, travel_date, position,
		price, airline, departure, arrival, duration_minutes,
		emissions_kg, flight_number, deep_link
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert quote cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, q := range quotes {
		if _, err := stmt.ExecContext(ctx,
			origin, destination, date, i,
			q.Price, q.Airline,
			q.DepartureTime.UTC().Format(time.RFC3339),
			q.ArrivalTime.UTC().Format(time.RFC3339),
			q.DurationMinutes, q.EmissionsKg, q.FlightNumber, q.DeepLink,
		); err != nil {
			return fmt.Errorf("insert quote cache position=%d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert quote cache commit: %w", err)
	}

	return nil
}
