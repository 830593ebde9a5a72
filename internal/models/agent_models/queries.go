package agent_models

// Feature type tags carried on search queries. They drive the presentation
// order of collected context but carry no other semantics.
const (
	FeatureTypePlaceToVisit         = "place_to_visit"
	FeatureTypeCuisinePreferences   = "cuisine_preferences"
	FeatureTypePlacePreferences     = "place_preferences"
	FeatureTypeTransportPreferences = "transport_preferences"
	FeatureTypeGeneral              = "general"
)

// SearchQuery is one labeled web query derived from the trip features.
type SearchQuery struct {
	FeatureType  string `json:"feature_type"`
	FeatureValue string `json:"feature_value"`
	SearchQuery  string `json:"search_query"`
}
