package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reunion-route-service/internal/adapters/quotes"
	"reunion-route-service/internal/api/dto"
)

func newRecommendationHandler() *RecommendationHandler {
	return &RecommendationHandler{Source: quotes.NewMockQuoteSource()}
}

func postRecommendations(t *testing.T, h *RecommendationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Recommend(rec, req)
	return rec
}

const validBody = `{
	"travelers": [
		{"name": "Alice", "origin": "jfk"},
		{"name": "Bob", "origin": "LAX"},
		{"name": "Carol", "origin": "ORD"}
	],
	"destinations": ["las", "SEA", "DEN"],
	"travel_date": "2026-05-15"
}`

func TestRecommendHappyPath(t *testing.T) {
	rec := postRecommendations(t, newRecommendationHandler(), validBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.Destinations) != 3 {
		t.Fatalf("expected 3 destinations, got %d", len(res.Destinations))
	}
	if res.Destinations[0].Destination != "DEN" {
		t.Errorf("top destination = %q, want DEN", res.Destinations[0].Destination)
	}
	if res.Destinations[0].TotalCost != 910 {
		t.Errorf("top total cost = %v, want 910", res.Destinations[0].TotalCost)
	}
	if len(res.Destinations[0].FlightPlans) != 3 {
		t.Errorf("expected 3 flight plans, got %d", len(res.Destinations[0].FlightPlans))
	}
	if res.Destinations[0].FlightPlans[0].Origin != "JFK" {
		t.Errorf("origin = %q, want JFK (uppercased)", res.Destinations[0].FlightPlans[0].Origin)
	}
}

func TestRecommendTopNTruncates(t *testing.T) {
	body := strings.Replace(validBody, `"travel_date": "2026-05-15"`, `"travel_date": "2026-05-15", "top_n": 1`, 1)
	rec := postRecommendations(t, newRecommendationHandler(), body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Destinations) != 1 {
		t.Fatalf("expected 1 destination, got %d", len(res.Destinations))
	}
	if res.Destinations[0].Destination != "DEN" {
		t.Errorf("destination = %q, want DEN", res.Destinations[0].Destination)
	}
}

func TestRecommendPreferenceOverride(t *testing.T) {
	body := `{
		"travelers": [
			{"name": "Alice", "origin": "JFK"},
			{"name": "Bob", "origin": "LAX"},
			{"name": "Carol", "origin": "ORD"}
		],
		"destinations": ["SEA", "DEN"],
		"travel_date": "2026-05-15",
		"cost_weight": 0,
		"emissions_weight": 0,
		"preference_weight": 1,
		"preference_override": {"SEA": 1.0, "DEN": 0.0}
	}`

	rec := postRecommendations(t, newRecommendationHandler(), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Destinations[0].Destination != "SEA" {
		t.Errorf("top destination = %q, want SEA under preference-only weighting", res.Destinations[0].Destination)
	}
}

func TestRecommendRejectsBadRequests(t *testing.T) {
	h := newRecommendationHandler()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"travelers": [], "destinations": [], "travel_date": "2026-05-15", "bogus": 1}`},
		{"bad date", strings.Replace(validBody, "2026-05-15", "05/15/2026", 1)},
		{"no travelers", `{"travelers": [], "destinations": ["DEN"], "travel_date": "2026-05-15"}`},
		{"no destinations", `{"travelers": [{"name": "A", "origin": "JFK"}], "destinations": [], "travel_date": "2026-05-15"}`},
		{"negative weight", strings.Replace(validBody, `"travel_date": "2026-05-15"`, `"travel_date": "2026-05-15", "cost_weight": -1`, 1)},
		{"top_n too large", strings.Replace(validBody, `"travel_date": "2026-05-15"`, `"travel_date": "2026-05-15", "top_n": 100`, 1)},
		{"two json objects", validBody + `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postRecommendations(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRecommendMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
	rec := httptest.NewRecorder()

	newRecommendationHandler().Recommend(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
