package quotes

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/ports"
)

// MockQuoteSource implements QuoteSource with a deterministic synthetic
// generator for offline operation and reproducible tests.
//
// All derived values come from FNV-1a 64 hashes and a byte-sum distance
// factor, so the same inputs always produce the same quotes. Roughly 10% of
// origin/destination pairs are reported unavailable to model real-world
// route gaps.
type MockQuoteSource struct{}

func NewMockQuoteSource() *MockQuoteSource {
	return &MockQuoteSource{}
}

var mockAirlines = [...]string{
	"Delta", "United", "American", "Lufthansa", "British Airways",
	"Air France", "KLM", "Emirates", "Singapore Airlines",
}

const maxMockOptions = 3

func routeHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// distanceFactor approximates route distance from the byte values of the
// airport codes. It drives price, duration, and emissions.
func distanceFactor(origin, destination string) int {
	sum := 0
	for _, b := range []byte(origin + destination) {
		sum += int(b)
	}
	return sum % 100
}

// Quotes generates 1-3 flight options for the route, cheapest first.
func (m *MockQuoteSource) Quotes(
	ctx context.Context,
	origin string,
	destination string,
	travelDate time.Time,
	maxResults int,
) ([]domain.FlightQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if origin == "" || destination == "" {
		return nil, fmt.Errorf("mock quotes: origin and destination must be non-empty")
	}

	pairHash := routeHash(origin + destination)
	if pairHash%10 == 0 {
		return nil, ports.ErrRouteUnavailable
	}

	n := maxResults
	if n < 1 {
		n = 1
	}
	if n > maxMockOptions {
		n = maxMockOptions
	}

	factor := distanceFactor(origin, destination)
	durationMinutes := 60 + factor*4
	emissions := float64(factor) / 10 * (1 + float64(pairHash%5)/10)

	date := travelDate.UTC()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]domain.FlightQuote, 0, n)
	for i := 0; i < n; i++ {
		airline := mockAirlines[routeHash(origin+destination+strconv.Itoa(i))%uint64(len(mockAirlines))]
		departureHour := 7 + int(routeHash(origin+strconv.Itoa(i))%12)
		departure := day.Add(time.Duration(departureHour) * time.Hour)

		out = append(out, domain.FlightQuote{
			// Each subsequent option costs more, so option 0 is always cheapest.
			Price:           float64(100 + factor*5 + i*50),
			Airline:         airline,
			DepartureTime:   departure,
			ArrivalTime:     departure.Add(time.Duration(durationMinutes) * time.Minute),
			DurationMinutes: durationMinutes,
			EmissionsKg:     emissions,
			FlightNumber:    airline[:2] + strconv.Itoa(100+int(pairHash%900)),
			DeepLink:        fmt.Sprintf("https://example.com/flights/%s-%s", origin, destination),
		})
	}

	return out, nil
}
