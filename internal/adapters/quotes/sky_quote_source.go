package quotes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"reunion-route-service/internal/domain"
	"reunion-route-service/internal/platform/metrics"
	"reunion-route-service/internal/platform/obs"
	"reunion-route-service/internal/ports"
)

// SkyQuoteSource implements QuoteSource against a live flight-search API.
//
// It coordinates:
//   - Persistent quote caching keyed by route and travel date
//   - Outbound rate limiting
//   - External API calls with retry/backoff
//
// Failures never escape this boundary as hard errors: exhausted retries and
// malformed responses degrade to ErrRouteUnavailable with the cause logged.
// The source is safe for concurrent use.
type SkyQuoteSource struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	market   string
	currency string
	limiter  *rate.Limiter
	cache    ports.QuoteCache
}

func NewSkyQuoteSource(apiKey, baseURL string, cache ports.QuoteCache) (*SkyQuoteSource, error) {
	if apiKey == "" {
		return nil, errors.New("flight API key is empty")
	}
	if baseURL == "" {
		baseURL = "https://partners.api.skyscanner.net/apiservices"
	}

	source := &SkyQuoteSource{
		session:  &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		baseURL:  baseURL,
		market:   "US",
		currency: "USD",
		// Partner tiers allow roughly one search per second sustained.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		cache:   cache,
	}

	return source, nil
}

type searchRequest struct {
	Query searchQuery `json:"query"`
}

type searchQuery struct {
	Market     string     `json:"market"`
	Locale     string     `json:"locale"`
	Currency   string     `json:"currency"`
	QueryLegs  []queryLeg `json:"queryLegs"`
	CabinClass string     `json:"cabinClass"`
	Adults     int        `json:"adults"`
}

type queryLeg struct {
	OriginPlaceID      placeRef `json:"originPlaceId"`
	DestinationPlaceID placeRef `json:"destinationPlaceId"`
	Date               legDate  `json:"date"`
}

type placeRef struct {
	IATA string `json:"iata"`
}

type legDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type searchResponse struct {
	Itineraries []itinerary `json:"itineraries"`
}

type itinerary struct {
	Price struct {
		Amount float64 `json:"amount"`
	} `json:"price"`
	Carrier         string  `json:"carrier"`
	FlightNumber    string  `json:"flightNumber"`
	Departure       string  `json:"departure"`
	Arrival         string  `json:"arrival"`
	DurationMinutes int     `json:"durationMinutes"`
	EmissionsKg     float64 `json:"emissionsKg"`
	DeepLink        string  `json:"deepLink"`
}

// Quotes resolves flight options for the route, consulting the persistent
// cache before issuing an external search.
func (s *SkyQuoteSource) Quotes(
	ctx context.Context,
	origin string,
	destination string,
	travelDate time.Time,
	maxResults int,
) (_ []domain.FlightQuote, err error) {
	defer obs.Time(ctx, "sky.Quotes")(&err)

	if origin == "" || destination == "" {
		return nil, errors.New("sky quotes: origin and destination must be non-empty")
	}
	if maxResults < 1 {
		maxResults = 1
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, origin, destination, travelDate)
		if err != nil {
			log.Printf("quote cache read failed: %v", err)
		} else if ok {
			metrics.QuoteLookups.WithLabelValues("live", "cache_hit").Inc()
			return capQuotes(cached, maxResults), nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	flights, err := s.search(ctx, origin, destination, travelDate, maxResults)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		// Exhausted retries and decode failures both mean the route cannot
		// be served right now; callers treat that as infeasibility.
		log.Printf("flight search failed route=%s-%s date=%s err=%v",
			origin, destination, travelDate.Format("2006-01-02"), err)
		metrics.QuoteLookups.WithLabelValues("live", "error").Inc()
		return nil, ports.ErrRouteUnavailable
	}

	if len(flights) == 0 {
		metrics.QuoteLookups.WithLabelValues("live", "unavailable").Inc()
		return nil, ports.ErrRouteUnavailable
	}
	metrics.QuoteLookups.WithLabelValues("live", "ok").Inc()

	if s.cache != nil {
		if err := s.cache.Put(ctx, origin, destination, travelDate, flights); err != nil {
			log.Printf("quote cache write failed: %v", err)
		}
	}

	return capQuotes(flights, maxResults), nil
}

func (s *SkyQuoteSource) search(
	ctx context.Context,
	origin string,
	destination string,
	travelDate time.Time,
	maxResults int,
) ([]domain.FlightQuote, error) {
	endpoint := s.baseURL + "/v3/flights/live/search/create"

	bodyObj := searchRequest{
		Query: searchQuery{
			Market:   s.market,
			Locale:   "en-US",
			Currency: s.currency,
			QueryLegs: []queryLeg{{
				OriginPlaceID:      placeRef{IATA: origin},
				DestinationPlaceID: placeRef{IATA: destination},
				Date: legDate{
					Year:  travelDate.Year(),
					Month: int(travelDate.Month()),
					Day:   travelDate.Day(),
				},
			}},
			CabinClass: "CABIN_CLASS_ECONOMY",
			Adults:     1,
		},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		return s.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.FlightQuote, 0, len(decoded.Itineraries))
	for _, it := range decoded.Itineraries {
		if len(out) == maxResults {
			break
		}

		departure, err := time.Parse(time.RFC3339, it.Departure)
		if err != nil {
			log.Printf("skipping itinerary with bad departure %q: %v", it.Departure, err)
			continue
		}

		arrival, err := time.Parse(time.RFC3339, it.Arrival)
		if err != nil {
			arrival = departure.Add(time.Duration(it.DurationMinutes) * time.Minute)
		}

		duration := it.DurationMinutes
		if duration == 0 && arrival.After(departure) {
			duration = int(arrival.Sub(departure).Minutes())
		}

		out = append(out, domain.FlightQuote{
			Price:           it.Price.Amount,
			Airline:         it.Carrier,
			DepartureTime:   departure,
			ArrivalTime:     arrival,
			DurationMinutes: duration,
			EmissionsKg:     it.EmissionsKg,
			FlightNumber:    it.FlightNumber,
			DeepLink:        it.DeepLink,
		})
	}

	return out, nil
}

func capQuotes(quotes []domain.FlightQuote, maxResults int) []domain.FlightQuote {
	if len(quotes) <= maxResults {
		return quotes
	}
	return quotes[:maxResults]
}
