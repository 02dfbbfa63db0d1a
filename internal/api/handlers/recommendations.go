package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"reunion-route-service/internal/api/dto"
	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/ports"
	"reunion-route-service/internal/services"
)

// Weight defaults match the planner's historical behavior: cost-dominated
// scoring with a modest emissions share and preferences off unless asked for.
const (
	defaultCostWeight       = 0.7
	defaultEmissionsWeight  = 0.3
	defaultPreferenceWeight = 0.0
	defaultTopN             = 5
	maxTopN                 = 20
)

type RecommendationHandler struct {
	Source ports.QuoteSource
	// Individual and Group may be nil; preference scoring then stays neutral.
	Individual ports.PreferenceStore
	Group      ports.PreferenceStore
}

// Recommend ranks candidate meeting destinations for a party of travelers.
// Truncation to top_n happens here, not in the ranking pipeline.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RecommendationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	travelDate, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.TravelDate), time.UTC)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "travel_date must be YYYY-MM-DD")
		return
	}

	topN := req.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	if topN < 1 || topN > maxTopN {
		writeError(w, r, http.StatusBadRequest, "top_n must be between 1 and 20")
		return
	}

	travelers := make([]domain.Traveler, 0, len(req.Travelers))
	for _, t := range req.Travelers {
		travelers = append(travelers, domain.Traveler{
			Name:    strings.TrimSpace(t.Name),
			Origin:  strings.ToUpper(strings.TrimSpace(t.Origin)),
			Ratings: t.Ratings,
		})
	}

	destinations := make([]string, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		destinations = append(destinations, strings.ToUpper(strings.TrimSpace(d)))
	}

	rankReq := services.RankRequest{
		Travelers:    travelers,
		Destinations: destinations,
		TravelDate:   travelDate,
		Weights: services.ScoreWeights{
			Cost:       weightOrDefault(req.CostWeight, defaultCostWeight),
			Emissions:  weightOrDefault(req.EmissionsWeight, defaultEmissionsWeight),
			Preference: weightOrDefault(req.PreferenceWeight, defaultPreferenceWeight),
		},
		MaxResultsPerRoute: req.MaxResultsPerRoute,
	}

	ranked, err := services.RankDestinations(r.Context(), rankReq, h.Source, h.scorer(req))
	if errors.Is(err, services.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("rank destinations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	res := dto.RecommendationResponse{
		Destinations: make([]dto.DestinationResponse, 0, len(ranked)),
	}
	for _, c := range ranked {
		plans := make([]dto.FlightPlanResponse, 0, len(c.FlightPlans))
		for _, p := range c.FlightPlans {
			plans = append(plans, dto.FlightPlanResponse{
				Traveler:        p.Traveler.Name,
				Origin:          p.Traveler.Origin,
				SameOrigin:      p.SameOrigin(),
				Airline:         p.Quote.Airline,
				Price:           p.Quote.Price,
				Departure:       p.Quote.DepartureTime,
				Arrival:         p.Quote.ArrivalTime,
				DurationMinutes: p.Quote.DurationMinutes,
				EmissionsKg:     p.Quote.EmissionsKg,
				FlightNumber:    p.Quote.FlightNumber,
				DeepLink:        p.Quote.DeepLink,
			})
		}

		res.Destinations = append(res.Destinations, dto.DestinationResponse{
			Destination:     c.Destination,
			TotalCost:       c.TotalCost,
			AverageCost:     c.AverageCost,
			TotalEmissions:  c.TotalEmissions,
			PreferenceScore: c.PreferenceScore,
			Score:           c.Score,
			FlightPlans:     plans,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// scorer picks the per-request preference source: a flat override map wins
// over the configured stores.
func (h *RecommendationHandler) scorer(req dto.RecommendationRequest) services.PreferenceScorer {
	if len(req.PreferenceOverride) > 0 {
		return services.StaticPreferences(req.PreferenceOverride)
	}
	return &services.PreferenceBlender{
		Individual: h.Individual,
		Group:      h.Group,
	}
}

func weightOrDefault(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
