package ports

import (
	"context"
	"errors"
	"time"

	"reunion-route-service/internal/domain"
)

// ErrRouteUnavailable signals that no flight exists for an origin->destination
// pair on the travel date. It is a feasibility outcome, not a hard failure:
// implementations convert transient backend errors into it after exhausting
// their retry budget.
var ErrRouteUnavailable = errors.New("route unavailable")

// Contract for resolving flight quotes for one route on one date.
type QuoteSource interface {
	// Return up to maxResults flight quotes for the route, or
	// ErrRouteUnavailable when the route cannot be served.
	Quotes(ctx context.Context, origin, destination string, travelDate time.Time, maxResults int) ([]domain.FlightQuote, error)
}
