package ports

import (
	"context"
	"time"

	"reunion-route-service/internal/domain"
)

// Optional persistent cache for quote lookups keyed by route and travel date.
// Used by live quote sources to avoid repeated external API calls.
type QuoteCache interface {
	// Return cached quotes for the route, in their original order.
	// The boolean is false on a cache miss.
	Get(ctx context.Context, origin, destination string, travelDate time.Time) ([]domain.FlightQuote, bool, error)

	// Store quotes for the route, replacing any previous entry.
	Put(ctx context.Context, origin, destination string, travelDate time.Time, quotes []domain.FlightQuote) error
}
