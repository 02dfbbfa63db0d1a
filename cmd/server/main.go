package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"database/sql"

	"reunion-route-service/internal/adapters/airports"
	"reunion-route-service/internal/adapters/cache"
	"reunion-route-service/internal/adapters/preferences"
	"reunion-route-service/internal/adapters/quotes"
	"reunion-route-service/internal/adapters/repositories"
	"reunion-route-service/internal/api"
	"reunion-route-service/internal/config"
	"reunion-route-service/internal/platform/db"
	"reunion-route-service/internal/platform/metrics"
	"reunion-route-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (mock or live quote source, SQL/SQLite cache,
// Redis or SQL preference stores) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	airportsPath := config.Get("AIRPORTS_PATH", "")

	metrics.RegisterDefault()

	quoteCache, prefStore, closeDB := openStorage()
	if closeDB != nil {
		defer closeDB()
	}

	source, err := buildQuoteSource(quoteCache)
	if err != nil {
		log.Fatal(err)
	}

	individual, group := buildPreferenceStores(prefStore)

	directory, err := buildDirectory(airportsPath)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(source, individual, group, directory)

	// Write timeout allows for cold-cache live quote fan-out (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage picks the persistence backend from the environment.
// DATABASE_URL wins over SQLITE_PATH; with neither set the service runs
// with no quote cache and in-memory preferences.
func openStorage() (ports.QuoteCache, ports.PreferenceStore, func()) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Using Postgres storage")
		return cache.NewSQLQuoteCache(conn), preferences.NewSQLStore(conn), func() { conn.Close() }
	}

	if sqlitePath := os.Getenv("SQLITE_PATH"); strings.TrimSpace(sqlitePath) != "" {
		conn, err := sql.Open("sqlite", sqlitePath)
		if err != nil {
			log.Fatal(err)
		}
		if err := repositories.InitSchema(conn); err != nil {
			log.Fatal(err)
		}
		log.Printf("Using SQLite storage path=%s", sqlitePath)
		return cache.NewSqliteQuoteCache(conn), nil, func() { conn.Close() }
	}

	log.Println("No storage configured (quote cache disabled)")
	return nil, nil, nil
}

func buildQuoteSource(quoteCache ports.QuoteCache) (ports.QuoteSource, error) {
	if config.GetBool("MOCK_QUOTES", true) {
		log.Println("Using mock quote source")
		return quotes.NewMockQuoteSource(), nil
	}

	apiKey := os.Getenv("FLIGHT_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("FLIGHT_API_KEY is required when MOCK_QUOTES=false")
	}

	log.Println("Using live quote source")
	return quotes.NewSkyQuoteSource(apiKey, os.Getenv("FLIGHT_API_URL"), quoteCache)
}

// buildPreferenceStores returns (individual, group). A configured Redis
// instance takes priority; otherwise the SQL store backs both, and with no
// storage at all preferences live in process memory.
func buildPreferenceStores(sqlStore ports.PreferenceStore) (ports.PreferenceStore, ports.PreferenceStore) {
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       config.GetInt("REDIS_DB", 0),
		})
		log.Printf("Using Redis preference store addr=%s", addr)
		store := preferences.NewRedisStore(client)
		return store, store
	}

	if sqlStore != nil {
		return sqlStore, sqlStore
	}

	log.Println("Using in-memory preference store")
	store := preferences.NewMemoryStore()
	return store, store
}

func buildDirectory(path string) (ports.AirportDirectory, error) {
	if path == "" {
		return airports.NewDirectory(), nil
	}
	return airports.LoadDirectory(path)
}
