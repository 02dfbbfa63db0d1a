package services

import (
	"context"
	"log"

	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/ports"
)

// PreferenceScorer produces a bounded preference score in [0,1] for a
// destination; higher means more preferred.
type PreferenceScorer interface {
	Score(ctx context.Context, destination string, travelers []domain.Traveler) (float64, error)
}

// StaticPreferences is a flat destination->score override map implementing
// PreferenceScorer; unlisted destinations score neutral.
type StaticPreferences map[string]float64

func (s StaticPreferences) Score(ctx context.Context, destination string, travelers []domain.Traveler) (float64, error) {
	if v, ok := s[destination]; ok {
		return clamp(v, 0, 1), nil
	}
	return neutralScore, nil
}

// Blending constants. Ratings live on a 0-5 scale; scores on [0,1].
//
// The individual multiplier grows monotonically with the accumulated signal
// but is clamped to [boostFloor, boostCeiling], so repeated positive
// reinforcement can never push a score past its bound. The group signal
// contributes independently at a lower weight. An avoided destination takes
// a fixed penalty and is capped at neutral: it stays visible but never
// outranks a neutral, unflagged destination under default weights.
const (
	ratingScale  = 5.0
	neutralScore = 0.5
	boostStep    = 0.15
	boostFloor   = 0.25
	boostCeiling = 1.75
	groupWeight  = 0.1
	avoidPenalty = 0.25
)

// PreferenceBlender combines explicit per-traveler destination ratings with
// learned individual and group preference signals into one score per
// destination.
//
// Both stores are externally owned, read-mostly inputs; the blender never
// writes to them. Either store may be nil. Store read failures degrade to
// the absent-signal path and are logged, never fatal.
type PreferenceBlender struct {
	Individual ports.PreferenceStore
	Group      ports.PreferenceStore
	// GroupOwner is the owner key under which group-average signals are
	// stored; defaults to "group".
	GroupOwner string
}

// Score blends explicit ratings and store signals for one destination.
// The result is always in [0,1]; with no ratings or signals it is exactly
// neutralScore.
func (b *PreferenceBlender) Score(
	ctx context.Context,
	destination string,
	travelers []domain.Traveler,
) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(travelers) == 0 {
		return neutralScore, nil
	}

	sum := 0.0
	for _, t := range travelers {
		base := neutralScore
		if rating, ok := t.Rating(destination); ok {
			base = clamp(rating, 0, ratingScale) / ratingScale
		}

		if r, ok := b.lookup(ctx, b.Individual, t.Name, domain.PreferenceDestination, destination); ok {
			base *= clamp(1+boostStep*r, boostFloor, boostCeiling)
		}

		sum += base
	}
	score := sum / float64(len(travelers))

	if g, ok := b.lookup(ctx, b.Group, b.groupOwner(), domain.PreferenceDestination, destination); ok {
		score += groupWeight * (clamp(g, 0, ratingScale)/ratingScale - neutralScore)
	}

	if b.avoided(ctx, destination, travelers) {
		score -= avoidPenalty
		if score > neutralScore {
			score = neutralScore
		}
	}

	return clamp(score, 0, 1), nil
}

func (b *PreferenceBlender) groupOwner() string {
	if b.GroupOwner != "" {
		return b.GroupOwner
	}
	return "group"
}

// avoided reports whether any traveler or the group has flagged the
// destination as one to avoid.
func (b *PreferenceBlender) avoided(ctx context.Context, destination string, travelers []domain.Traveler) bool {
	for _, t := range travelers {
		if r, ok := b.lookup(ctx, b.Individual, t.Name, domain.PreferenceAvoid, destination); ok && r > 0 {
			return true
		}
	}
	if r, ok := b.lookup(ctx, b.Group, b.groupOwner(), domain.PreferenceAvoid, destination); ok && r > 0 {
		return true
	}
	return false
}

func (b *PreferenceBlender) lookup(
	ctx context.Context,
	store ports.PreferenceStore,
	owner string,
	category domain.PreferenceCategory,
	key string,
) (float64, bool) {
	if store == nil {
		return 0, false
	}

	r, ok, err := store.Get(ctx, owner, category, key)
	if err != nil {
		log.Printf("preference read failed owner=%s category=%s key=%s err=%v", owner, category, key, err)
		return 0, false
	}
	return r, ok
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
