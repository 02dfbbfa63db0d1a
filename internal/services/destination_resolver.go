package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/ports"
)

// DestinationResolver checks whether every traveler can reach one
// destination, resolving the per-traveler routes concurrently.
type DestinationResolver struct {
	Source             ports.QuoteSource
	MaxResultsPerRoute int
	// RouteFanOut bounds concurrent quote lookups within one destination.
	RouteFanOut int
}

// ResolveDestination resolves a route for every traveler and builds a
// candidate with aggregate cost and emissions.
//
// Feasibility is all-or-nothing: if any traveler has no route, the
// destination is rejected (nil candidate, nil error). All resolutions are
// awaited even when one comes back infeasible, so no goroutine outlives the
// call. Flight plans keep traveler order regardless of completion order.
func (r *DestinationResolver) ResolveDestination(
	ctx context.Context,
	destination string,
	travelers []domain.Traveler,
	travelDate time.Time,
) (*domain.DestinationCandidate, error) {
	if len(travelers) == 0 {
		return nil, fmt.Errorf("resolve destination %q: travelers must not be empty", destination)
	}

	fanOut := r.RouteFanOut
	if fanOut < 1 {
		fanOut = len(travelers)
	}

	outcomes := make([]domain.RouteOutcome, len(travelers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)

	for i, t := range travelers {
		i, t := i, t
		g.Go(func() error {
			outcome, err := ResolveRoute(gctx, t, destination, travelDate, r.Source, r.MaxResultsPerRoute)
			if err != nil {
				return fmt.Errorf("resolve destination %q: traveler %q: %w", destination, t.Name, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	plans := make([]domain.TravelerFlightPlan, 0, len(travelers))
	for _, outcome := range outcomes {
		if !outcome.Feasible {
			return nil, nil
		}
		plans = append(plans, outcome.Plan)
	}

	return domain.NewDestinationCandidate(destination, plans), nil
}
