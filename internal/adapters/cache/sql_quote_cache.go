package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/platform/obs"
)

// SQLQuoteCache is a Postgres-backed cache for route quote lookups.
// One row per flight option, keyed by (origin, destination, travel_date, position).
type SQLQuoteCache struct {
	DB *sql.DB
}

func NewSQLQuoteCache(db *sql.DB) *SQLQuoteCache {
	return &SQLQuoteCache{DB: db}
}

// Fetch cached quotes for one route and travel date, in option order.
func (s *SQLQuoteCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	travelDate time.Time,
) (_ []domain.FlightQuote, _ bool, err error) {
	defer obs.Time(ctx, "quote.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("quote cache: db is nil")
	}

	if origin == "" || destination == "" {
		return nil, false, errors.New("get quote cache: origin and destination must not be empty")
	}

	q := `
	SELECT price, airline, departure, arrival, duration_minutes, emissions_kg, flight_number, deep_link
	FROM quote_cache
	WHERE origin = $1
		AND destination = $2
		AND travel_date = $3
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
func (s *SQLQuoteCache) Put(
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

	// Delete-then-insert because a refresh may carry fewer options than the
	// cached entry it replaces.
	if _, err := tx.ExecContext(ctx, `
	DELETE FROM quote_cache
	WHERE origin = $1 AND destination = $2 AND travel_date = $3;
	`, origin, destination, date); err != nil {
		return fmt.Errorf("insert quote cache: delete stale entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO quote_cache (
		origin, destination, travel_date, position,
		price, airline, departure, arrival, duration_minutes,
		emissions_kg, flight_number, deep_link
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
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

func scanQuoteRows(rows *sql.Rows) ([]domain.FlightQuote, error) {
	out := make([]domain.FlightQuote, 0, 4)
	for rows.Next() {
		var q domain.FlightQuote
		var departure, arrival string
		if err := rows.Scan(
			&q.Price, &q.Airline, &departure, &arrival,
			&q.DurationMinutes, &q.EmissionsKg, &q.FlightNumber, &q.DeepLink,
		); err != nil {
			return nil, fmt.Errorf("scan rows: %w", err)
		}

		dep, err := time.Parse(time.RFC3339, departure)
		if err != nil {
			return nil, fmt.Errorf("parse departure %q: %w", departure, err)
		}
		arr, err := time.Parse(time.RFC3339, arrival)
		if err != nil {
			return nil, fmt.Errorf("parse arrival %q: %w", arrival, err)
		}
		q.DepartureTime = dep
		q.ArrivalTime = arr

		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return out, nil
}
