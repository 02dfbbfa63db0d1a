package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/ports"
)

// ResolveRoute determines how one traveler reaches a destination on the
// travel date.
//
// A traveler already located at the destination gets a zero-cost synthetic
// plan without consulting the quote source. Otherwise the cheapest quote
// wins; ties break by shortest duration, then lexicographically by airline,
// so repeated runs select the same flight. An unavailable route yields an
// infeasible outcome, never an error.
func ResolveRoute(
	ctx context.Context,
	traveler domain.Traveler,
	destination string,
	travelDate time.Time,
	source ports.QuoteSource,
	maxResults int,
) (domain.RouteOutcome, error) {
	if traveler.Origin == "" {
		return domain.RouteOutcome{}, fmt.Errorf("resolve route: traveler %q has empty origin", traveler.Name)
	}
	if destination == "" {
		return domain.RouteOutcome{}, errors.New("resolve route: destination must be non-empty")
	}

	if traveler.Origin == destination {
		return domain.RouteOutcome{
			Plan:     domain.SyntheticPlan(traveler, travelDate),
			Feasible: true,
		}, nil
	}

	quotes, err := source.Quotes(ctx, traveler.Origin, destination, travelDate, maxResults)
	if errors.Is(err, ports.ErrRouteUnavailable) {
		return domain.RouteOutcome{Feasible: false}, nil
	}
	if err != nil {
		return domain.RouteOutcome{}, fmt.Errorf(
			"resolve route: quotes %q -> %q: %w",
			traveler.Origin, destination, err,
		)
	}
	if len(quotes) == 0 {
		return domain.RouteOutcome{Feasible: false}, nil
	}

	best := cheapestQuote(quotes)

	return domain.RouteOutcome{
		Plan:     domain.TravelerFlightPlan{Traveler: traveler, Quote: best},
		Feasible: true,
	}, nil
}

// cheapestQuote selects the minimum-price quote with deterministic tie-breaks.
func cheapestQuote(quotes []domain.FlightQuote) domain.FlightQuote {
	best := quotes[0]
	for _, q := range quotes[1:] {
		if quoteLess(q, best) {
			best = q
		}
	}
	return best
}

func quoteLess(a, b domain.FlightQuote) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if a.DurationMinutes != b.DurationMinutes {
		return a.DurationMinutes < b.DurationMinutes
	}
	return a.Airline < b.Airline
}
