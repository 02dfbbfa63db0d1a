package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"reunion-route-service/internal/ports"
)

const searchBody = `{
	"itineraries": [
		{
			"price": {"amount": 412.5},
			"carrier": "United",
			"flightNumber": "UA1204",
			"departure": "2026-05-15T09:30:00Z",
			"arrival": "2026-05-15T13:10:00Z",
			"durationMinutes": 220,
			"emissionsKg": 181.4,
			"deepLink": "https://example.com/book/UA1204"
		},
		{
			"price": {"amount": 455},
			"carrier": "Delta",
			"flightNumber": "DL88",
			"departure": "2026-05-15T11:00:00Z",
			"arrival": "2026-05-15T14:45:00Z",
			"durationMinutes": 225,
			"emissionsKg": 190.2,
			"deepLink": "https://example.com/book/DL88"
		}
	]
}`

func TestSkyQuoteSourceRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/flights/live/search/create" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("missing api key header")
		}

		if calls.Add(1) <= 2 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	source, err := NewSkyQuoteSource("test-key", srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	got, err := source.Quotes(context.Background(), "JFK", "DEN", travelDate, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(got))
	}
	if got[0].Price != 412.5 {
		t.Errorf("price = %v, want 412.5", got[0].Price)
	}
	if got[0].Airline != "United" {
		t.Errorf("airline = %q, want United", got[0].Airline)
	}
	if got[0].DurationMinutes != 220 {
		t.Errorf("duration = %d, want 220", got[0].DurationMinutes)
	}

	wantDeparture := time.Date(2026, 5, 15, 9, 30, 0, 0, time.UTC)
	if !got[0].DepartureTime.Equal(wantDeparture) {
		t.Errorf("departure = %v, want %v", got[0].DepartureTime, wantDeparture)
	}
}

func TestSkyQuoteSourceExhaustedRetriesDegradeToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	source, err := NewSkyQuoteSource("test-key", srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	_, err = source.Quotes(context.Background(), "JFK", "DEN", travelDate, 1)
	if !errors.Is(err, ports.ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable, got %v", err)
	}
}

func TestSkyQuoteSourceNoItinerariesMeansUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"itineraries": []}`))
	}))
	defer srv.Close()

	source, err := NewSkyQuoteSource("test-key", srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	_, err = source.Quotes(context.Background(), "JFK", "DEN", travelDate, 1)
	if !errors.Is(err, ports.ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable, got %v", err)
	}
}

func TestSkyQuoteSourceMaxResultsCapsItineraries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	source, err := NewSkyQuoteSource("test-key", srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	got, err := source.Quotes(context.Background(), "JFK", "DEN", travelDate, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(got))
	}
}

func TestNewSkyQuoteSourceRequiresKey(t *testing.T) {
	if _, err := NewSkyQuoteSource("", "", nil); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
