package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reunion-route-service/internal/api/handlers"
	"reunion-route-service/internal/platform/metrics"
	"reunion-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	source ports.QuoteSource,
	individual ports.PreferenceStore,
	group ports.PreferenceStore,
	directory ports.AirportDirectory,
) http.Handler {
	mux := http.NewServeMux()

	recHandler := &handlers.RecommendationHandler{
		Source:     source,
		Individual: individual,
		Group:      group,
	}
	airportHandler := &handlers.AirportHandler{Directory: directory}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/airports", airportHandler.List)
	mux.HandleFunc("/recommendations", recHandler.Recommend)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestMiddleware(mux)
}
