package airports

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"reunion-route-service/internal/ports"
)

// Directory is a static in-memory AirportDirectory.
// It is read-only after construction and safe for concurrent use.
type Directory struct {
	byCode map[string]ports.Airport
}

type airportEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Reference table carried over from the planner's original seed data.
var defaultAirports = []ports.Airport{
	{Code: "ATL", Name: "Atlanta, USA"},
	{Code: "AUS", Name: "Austin, USA"},
	{Code: "BOS", Name: "Boston, USA"},
	{Code: "CDG", Name: "Paris, France"},
	{Code: "DEN", Name: "Denver, USA"},
	{Code: "DFW", Name: "Dallas/Fort Worth, USA"},
	{Code: "LAS", Name: "Las Vegas, USA"},
	{Code: "LAX", Name: "Los Angeles, USA"},
	{Code: "LHR", Name: "London, UK"},
	{Code: "JFK", Name: "New York, USA"},
	{Code: "MCO", Name: "Orlando, USA"},
	{Code: "MIA", Name: "Miami, USA"},
	{Code: "ORD", Name: "Chicago, USA"},
	{Code: "PDX", Name: "Portland, USA"},
	{Code: "PHX", Name: "Phoenix, USA"},
	{Code: "SAN", Name: "San Diego, USA"},
	{Code: "SEA", Name: "Seattle, USA"},
	{Code: "SFO", Name: "San Francisco, USA"},
	{Code: "YYZ", Name: "Toronto, Canada"},
}

// NewDirectory builds a directory from the built-in reference table.
func NewDirectory() *Directory {
	d := &Directory{byCode: make(map[string]ports.Airport, len(defaultAirports))}
	for _, a := range defaultAirports {
		d.byCode[a.Code] = a
	}
	return d
}

// LoadDirectory builds a directory from a YAML file containing a list of
// {code, name} entries.
func LoadDirectory(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load airports: read %q: %w", path, err)
	}

	var entries []airportEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("load airports: parse yaml: %w", err)
	}

	d := &Directory{byCode: make(map[string]ports.Airport, len(entries))}
	for i, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.Code))
		if len(code) != 3 {
			return nil, fmt.Errorf("load airports: entry %d: code %q must be 3 letters", i+1, e.Code)
		}
		d.byCode[code] = ports.Airport{Code: code, Name: strings.TrimSpace(e.Name)}
	}

	if len(d.byCode) == 0 {
		return nil, fmt.Errorf("load airports: %q contains no entries", path)
	}

	return d, nil
}

func (d *Directory) Lookup(code string) (ports.Airport, bool) {
	a, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// List returns all airports ordered by code for deterministic output.
func (d *Directory) List() []ports.Airport {
	out := make([]ports.Airport, 0, len(d.byCode))
	for _, a := range d.byCode {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
