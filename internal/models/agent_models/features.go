package agent_models

// UnknownDestination is the terminal fallback when no destination can be
// resolved from the user input.
const UnknownDestination = "Unknown destination"

// TripFeatures is the structured record extracted from the user's free-text
// request. It is immutable once built for a request. PlaceToVisit is never
// empty past extraction; optional fields are nil/empty when not mentioned.
type TripFeatures struct {
	PlaceToVisit         string   `json:"place_to_visit"`
	DurationDays         *int     `json:"duration_days"`
	CuisinePreferences   []string `json:"cuisine_preferences"`
	PlacePreferences     []string `json:"place_preferences"`
	TransportPreferences string   `json:"transport_preferences"`
}

// Duration returns the requested day count, or fallback when none was given.
func (f TripFeatures) Duration(fallback int) int {
	if f.DurationDays == nil || *f.DurationDays <= 0 {
		return fallback
	}
	return *f.DurationDays
}
