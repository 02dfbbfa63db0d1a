package domain

// A member of the reunion party.
// Origin is a 3-letter IATA airport code. Ratings maps destination codes to
// explicit preference ratings on an open, caller-defined scale (typically 0-5).
// Travelers are immutable for the duration of one optimization run.
type Traveler struct {
	Name    string
	Origin  string
	Ratings map[string]float64
}

// Explicit rating this traveler assigned to a destination, if any.
func (t Traveler) Rating(destination string) (float64, bool) {
	if t.Ratings == nil {
		return 0, false
	}
	r, ok := t.Ratings[destination]
	return r, ok
}
