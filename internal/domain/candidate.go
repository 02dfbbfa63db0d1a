package domain

// A candidate meeting destination that every traveler can reach.
// Aggregates are derived from the per-traveler flight plans; Score is
// assigned during ranking (lower is better). Candidates live only for the
// duration of one optimization run.
type DestinationCandidate struct {
	Destination     string
	FlightPlans     []TravelerFlightPlan
	TotalCost       float64
	AverageCost     float64
	TotalEmissions  float64
	PreferenceScore float64
	Score           float64
}

// NewDestinationCandidate derives cost and emissions aggregates from a
// complete set of flight plans (one per traveler).
func NewDestinationCandidate(destination string, plans []TravelerFlightPlan) *DestinationCandidate {
	c := &DestinationCandidate{
		Destination: destination,
		FlightPlans: plans,
	}

	for _, p := range plans {
		c.TotalCost += p.Quote.Price
		c.TotalEmissions += p.Quote.EmissionsKg
	}

	if len(plans) > 0 {
		c.AverageCost = c.TotalCost / float64(len(plans))
	}

	return c
}
