package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reunion-route-service/internal/domain"
)

// SQLStore is a Postgres-backed PreferenceStore for deployments that keep
// learned preferences across restarts.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Get(
	ctx context.Context,
	owner string,
	category domain.PreferenceCategory,
	key string,
) (float64, bool, error) {
	if s.DB == nil {
		return 0, false, errors.New("preference store: db is nil")
	}

	q := `
	SELECT rating
	FROM preferences
	WHERE owner = $1 AND category = $2 AND key = $3;
	`

	var rating float64
	err := s.DB.QueryRowContext(ctx, q, owner, string(category), key).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get preference %s/%s/%s: %w", owner, category, key, err)
	}

	return rating, true, nil
}

func (s *SQLStore) Increment(
	ctx context.Context,
	owner string,
	category domain.PreferenceCategory,
	key string,
	delta float64,
) (float64, error) {
	if s.DB == nil {
		return 0, errors.New("preference store: db is nil")
	}

	q := `
	INSERT INTO preferences (owner, category, key, rating)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (owner, category, key) DO UPDATE
	SET rating = preferences.rating + EXCLUDED.rating
	RETURNING rating;
	`

	var updated float64
	if err := s.DB.QueryRowContext(ctx, q, owner, string(category), key, delta).Scan(&updated); err != nil {
		return 0, fmt.Errorf("increment preference %s/%s/%s: %w", owner, category, key, err)
	}

	return updated, nil
}
