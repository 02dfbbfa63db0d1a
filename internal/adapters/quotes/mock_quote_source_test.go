package quotes

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"reunion-route-service/internal/ports"
)

func TestMockQuoteSourceKnownRoute(t *testing.T) {
	source := NewMockQuoteSource()
	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	got, err := source.Quotes(context.Background(), "JFK", "DEN", travelDate, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(got))
	}

	first := got[0]
	if first.Price != 270 {
		t.Errorf("price = %v, want 270", first.Price)
	}
	if first.Airline != "KLM" {
		t.Errorf("airline = %q, want KLM", first.Airline)
	}
	if first.DurationMinutes != 196 {
		t.Errorf("duration = %d, want 196", first.DurationMinutes)
	}
	if math.Abs(first.EmissionsKg-4.42) > 1e-9 {
		t.Errorf("emissions = %v, want 4.42", first.EmissionsKg)
	}
	if first.FlightNumber != "KL453" {
		t.Errorf("flight number = %q, want KL453", first.FlightNumber)
	}

	wantDeparture := time.Date(2026, 5, 15, 17, 0, 0, 0, time.UTC)
	if !first.DepartureTime.Equal(wantDeparture) {
		t.Errorf("departure = %v, want %v", first.DepartureTime, wantDeparture)
	}
	if !first.ArrivalTime.Equal(wantDeparture.Add(196 * time.Minute)) {
		t.Errorf("arrival = %v, want departure+196m", first.ArrivalTime)
	}

	// Subsequent options cost 50 more each; option 0 stays cheapest.
	if got[1].Price != 320 || got[2].Price != 370 {
		t.Errorf("option prices = %v, %v, want 320, 370", got[1].Price, got[2].Price)
	}
}

func TestMockQuoteSourceDeterministic(t *testing.T) {
	source := NewMockQuoteSource()
	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	a, err := source.Quotes(context.Background(), "LAX", "DEN", travelDate, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := source.Quotes(context.Background(), "LAX", "DEN", travelDate, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("quote %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMockQuoteSourceUnavailableRoute(t *testing.T) {
	source := NewMockQuoteSource()
	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	_, err := source.Quotes(context.Background(), "LAX", "SFO", travelDate, 1)
	if !errors.Is(err, ports.ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable, got %v", err)
	}
}

func TestMockQuoteSourceClampsOptionCount(t *testing.T) {
	source := NewMockQuoteSource()
	travelDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	got, err := source.Quotes(context.Background(), "JFK", "DEN", travelDate, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected at most 3 quotes, got %d", len(got))
	}

	got, err = source.Quotes(context.Background(), "JFK", "DEN", travelDate, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 quote for maxResults=0, got %d", len(got))
	}
}

func TestMockQuoteSourceRejectsEmptyCodes(t *testing.T) {
	source := NewMockQuoteSource()

	if _, err := source.Quotes(context.Background(), "", "DEN", time.Now(), 1); err == nil {
		t.Error("expected error for empty origin")
	}
	if _, err := source.Quotes(context.Background(), "JFK", "", time.Now(), 1); err == nil {
		t.Error("expected error for empty destination")
	}
}
