package ports

// A reference airport entry.
type Airport struct {
	Code string
	Name string
}

// Port: static airport-code reference lookups.
type AirportDirectory interface {
	// Resolve a 3-letter IATA code to its airport entry.
	Lookup(code string) (Airport, bool)

	// Return all known airports ordered by code.
	List() []Airport
}
