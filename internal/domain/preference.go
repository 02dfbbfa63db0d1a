package domain

// Category of a preference signal. The optimization engine only interprets
// the destination and avoid categories; others pass through untouched for
// collaborating layers (e.g. airline or activity preferences learned from chat).
type PreferenceCategory string

const (
	PreferenceDestination PreferenceCategory = "destination"
	PreferenceAirline     PreferenceCategory = "airline"
	PreferenceActivity    PreferenceCategory = "activity"
	PreferenceAvoid       PreferenceCategory = "avoid"
)

// A single preference signal: a rating associated with a (category, key)
// pair for one owner (a traveler/session, or the group aggregate).
type PreferenceSignal struct {
	Category PreferenceCategory
	Key      string
	Rating   float64
}
