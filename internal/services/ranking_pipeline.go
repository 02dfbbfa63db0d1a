package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/ports"
)

// ErrInvalidInput marks structurally invalid requests, rejected before any
// concurrent work starts.
var ErrInvalidInput = errors.New("invalid input")

type RankRequest struct {
	Travelers    []domain.Traveler
	Destinations []string
	TravelDate   time.Time
	Weights      ScoreWeights
	// MaxResultsPerRoute caps the quote options considered per route;
	// defaults to 1 (the cheapest is selected anyway).
	MaxResultsPerRoute int
	// Concurrency bounds the destination worker pool; defaults to 5.
	Concurrency int
}

type destinationResult struct {
	candidate *domain.DestinationCandidate
	err       error
}

// RankDestinations evaluates every candidate destination for the whole
// party and returns the feasible ones ordered by score (lower is better,
// ties broken by destination code ascending).
//
// Destinations are processed by a bounded worker pool; each is an
// independent unit of work, so failure or infeasibility of one never
// affects another. The list is not truncated: top-N selection belongs to
// the caller. An empty result is a valid "no feasible destination" outcome.
func RankDestinations(
	ctx context.Context,
	req RankRequest,
	source ports.QuoteSource,
	preferences PreferenceScorer,
) ([]*domain.DestinationCandidate, error) {
	if err := validateRankRequest(req); err != nil {
		return nil, err
	}

	destinations := dedupeCodes(req.Destinations)

	concurrency := req.Concurrency
	if concurrency < 1 {
		concurrency = 5
	}

	resolver := &DestinationResolver{
		Source:             source,
		MaxResultsPerRoute: req.MaxResultsPerRoute,
		RouteFanOut:        len(req.Travelers),
	}

	sem := make(chan struct{}, concurrency)
	resultsCh := make(chan destinationResult, len(destinations))
	var wg sync.WaitGroup

	for _, dest := range destinations {
		wg.Add(1)
		go func(dest string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			candidate, err := resolver.ResolveDestination(ctx, dest, req.Travelers, req.TravelDate)
			resultsCh <- destinationResult{candidate: candidate, err: err}
		}(dest)
	}

	wg.Wait()
	close(resultsCh)

	candidates := make([]*domain.DestinationCandidate, 0, len(destinations))
	for res := range resultsCh {
		if res.err != nil {
			// An unresolvable destination is excluded from the ranking,
			// never fatal for the run.
			log.Printf("destination resolution failed: %v", res.err)
			continue
		}
		if res.candidate == nil {
			continue
		}
		candidates = append(candidates, res.candidate)
	}

	for _, c := range candidates {
		c.PreferenceScore = neutralScore
		if preferences == nil {
			continue
		}

		score, err := preferences.Score(ctx, c.Destination, req.Travelers)
		if err != nil {
			log.Printf("preference scoring failed destination=%s: %v", c.Destination, err)
			continue
		}
		c.PreferenceScore = score
	}

	ApplyScores(candidates, req.Weights)

	slices.SortStableFunc(candidates, func(a, b *domain.DestinationCandidate) int {
		if a.Score < b.Score {
			return -1
		}
		if a.Score > b.Score {
			return 1
		}
		return strings.Compare(a.Destination, b.Destination)
	})

	return candidates, nil
}

func validateRankRequest(req RankRequest) error {
	if len(req.Travelers) == 0 {
		return fmt.Errorf("rank destinations: %w: travelers must not be empty", ErrInvalidInput)
	}
	for i, t := range req.Travelers {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("rank destinations: %w: traveler %d has empty name", ErrInvalidInput, i+1)
		}
		if strings.TrimSpace(t.Origin) == "" {
			return fmt.Errorf("rank destinations: %w: traveler %q has empty origin", ErrInvalidInput, t.Name)
		}
	}

	if len(req.Destinations) == 0 {
		return fmt.Errorf("rank destinations: %w: destinations must not be empty", ErrInvalidInput)
	}
	for i, d := range req.Destinations {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("rank destinations: %w: destination %d is empty", ErrInvalidInput, i+1)
		}
	}

	if req.TravelDate.IsZero() {
		return fmt.Errorf("rank destinations: %w: travel date is required", ErrInvalidInput)
	}

	if req.Weights.Cost < 0 || req.Weights.Emissions < 0 || req.Weights.Preference < 0 {
		return fmt.Errorf("rank destinations: %w: weights must be non-negative", ErrInvalidInput)
	}

	return nil
}

func dedupeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
