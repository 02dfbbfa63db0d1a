package services

import "reunion-route-service/internal/domain"

// Weights for the blended destination score. They are not required to sum
// to 1 and are neither validated nor renormalized here; callers own weight
// selection.
type ScoreWeights struct {
	Cost       float64
	Emissions  float64
	Preference float64
}

// ApplyScores assigns the final score to every candidate.
//
// Scoring convention, used consistently across the whole pipeline: LOWER IS
// BETTER. Total cost and total emissions are min-max normalized to [0,1]
// across the candidate set and the preference score enters inverted, so a
// strongly preferred destination reduces the score:
//
//	score = costW*normCost + emissionsW*normEmissions + prefW*(1 - prefScore)
//
// When every candidate shares the same value in a dimension, that dimension
// contributes exactly 0 for all of them.
func ApplyScores(candidates []*domain.DestinationCandidate, weights ScoreWeights) {
	if len(candidates) == 0 {
		return
	}

	minCost, maxCost := valueRange(candidates, func(c *domain.DestinationCandidate) float64 { return c.TotalCost })
	minEmis, maxEmis := valueRange(candidates, func(c *domain.DestinationCandidate) float64 { return c.TotalEmissions })

	for _, c := range candidates {
		normCost := normalize(c.TotalCost, minCost, maxCost)
		normEmis := normalize(c.TotalEmissions, minEmis, maxEmis)

		c.Score = weights.Cost*normCost +
			weights.Emissions*normEmis +
			weights.Preference*(1-c.PreferenceScore)
	}
}

func valueRange(candidates []*domain.DestinationCandidate, value func(*domain.DestinationCandidate) float64) (float64, float64) {
	lo := value(candidates[0])
	hi := lo
	for _, c := range candidates[1:] {
		v := value(c)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// normalize rescales v into [0,1]; a degenerate range maps to 0 to avoid
// division by zero.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}
