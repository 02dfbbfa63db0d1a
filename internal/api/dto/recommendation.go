package dto

import "time"

type TravelerRequest struct {
	Name    string             `json:"name"`
	Origin  string             `json:"origin"`
	Ratings map[string]float64 `json:"ratings,omitempty"`
}

type RecommendationRequest struct {
	Travelers          []TravelerRequest  `json:"travelers"`
	Destinations       []string           `json:"destinations"`
	TravelDate         string             `json:"travel_date"`
	CostWeight         *float64           `json:"cost_weight"`
	EmissionsWeight    *float64           `json:"emissions_weight"`
	PreferenceWeight   *float64           `json:"preference_weight"`
	PreferenceOverride map[string]float64 `json:"preference_override,omitempty"`
	MaxResultsPerRoute int                `json:"max_results_per_route"`
	TopN               int                `json:"top_n"`
}

type FlightPlanResponse struct {
	Traveler        string    `json:"traveler"`
	Origin          string    `json:"origin"`
	SameOrigin      bool      `json:"same_origin"`
	Airline         string    `json:"airline"`
	Price           float64   `json:"price"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	DurationMinutes int       `json:"duration_minutes"`
	EmissionsKg     float64   `json:"emissions_kg"`
	FlightNumber    string    `json:"flight_number,omitempty"`
	DeepLink        string    `json:"deep_link,omitempty"`
}

type DestinationResponse struct {
	Destination     string               `json:"destination"`
	TotalCost       float64              `json:"total_cost"`
	AverageCost     float64              `json:"average_cost"`
	TotalEmissions  float64              `json:"total_emissions"`
	PreferenceScore float64              `json:"preference_score"`
	Score           float64              `json:"score"`
	FlightPlans     []FlightPlanResponse `json:"flight_plans"`
}

type RecommendationResponse struct {
	Destinations []DestinationResponse `json:"destinations"`
}
