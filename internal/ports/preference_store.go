package ports

import (
	"context"

	"reunion-route-service/internal/domain"
)

// Port: a boundary for reading and accumulating preference signals.
//
// Owner identifies whose signals these are: a traveler/session name for
// individual stores, or a fixed group identifier for the group-average store.
// The optimization engine only reads; Increment exists for the external
// preference-extraction collaborator that learns ratings from chat.
// Implementations must support concurrent reads.
type PreferenceStore interface {
	// Return the accumulated rating for (owner, category, key).
	// The boolean is false when no signal has been recorded.
	Get(ctx context.Context, owner string, category domain.PreferenceCategory, key string) (float64, bool, error)

	// Add delta to the rating for (owner, category, key) and return the
	// updated value.
	Increment(ctx context.Context, owner string, category domain.PreferenceCategory, key string, delta float64) (float64, error)
}
