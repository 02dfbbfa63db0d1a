package domain

import "time"

// A single flight option for one origin->destination route.
// FlightQuote is an immutable value produced by a quote source.
// EmissionsKg is zero when the source provides no estimate.
type FlightQuote struct {
	Price           float64
	Airline         string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	DurationMinutes int
	EmissionsKg     float64
	FlightNumber    string
	DeepLink        string
}

// The selected flight for one traveler to a destination.
type TravelerFlightPlan struct {
	Traveler Traveler
	Quote    FlightQuote
}

// SameOrigin reports whether the plan is the synthetic zero-cost entry used
// when a traveler is already located at the destination.
func (p TravelerFlightPlan) SameOrigin() bool {
	return p.Quote.Price == 0 && p.Quote.DurationMinutes == 0
}

// The result of resolving one traveler's route to a destination:
// either a resolved flight plan, or an explicit infeasibility marker.
// Infeasibility is a domain outcome, not an error.
type RouteOutcome struct {
	Plan     TravelerFlightPlan
	Feasible bool
}

// SyntheticPlan builds the zero-cost, zero-duration plan for a traveler whose
// origin equals the destination on the given travel date.
func SyntheticPlan(t Traveler, travelDate time.Time) TravelerFlightPlan {
	return TravelerFlightPlan{
		Traveler: t,
		Quote: FlightQuote{
			Price:         0,
			Airline:       "N/A",
			DepartureTime: travelDate,
			ArrivalTime:   travelDate,
		},
	}
}
