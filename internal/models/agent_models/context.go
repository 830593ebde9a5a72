package agent_models

// Place is one scraped point of interest.
type Place struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SearchResult groups the places scraped for a single query.
type SearchResult struct {
	FeatureType  string  `json:"feature_type"`
	FeatureValue string  `json:"feature_value"`
	Query        string  `json:"query"`
	Results      []Place `json:"results"`
}

// DailyForecast is one day of the five-day weather outlook.
type DailyForecast struct {
	Day         int    `json:"day"`
	MinTemp     string `json:"min_temp"`
	MaxTemp     string `json:"max_temp"`
	FeelsLike   string `json:"feels_like"`
	Description string `json:"description"`
	WindSpeed   string `json:"wind_speed"`
}

// WeatherInfo is the forecast for the destination. The zero value means no
// weather data was collected.
type WeatherInfo struct {
	Location        string          `json:"location,omitempty"`
	FiveDayForecast []DailyForecast `json:"five_day_forecast,omitempty"`
}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapInfo is the geocoding result for the destination. The zero value means
// no map data was collected.
type MapInfo struct {
	FormattedAddress string `json:"formatted_address,omitempty"`
	Location         LatLng `json:"location,omitempty"`
	PlaceID          string `json:"place_id,omitempty"`
}

// ContextBundle aggregates all external data collected for one request. It is
// built once by the context collector and read-only afterwards.
type ContextBundle struct {
	SearchResults []SearchResult `json:"search_results"`
	WeatherInfo   WeatherInfo    `json:"weather_info"`
	MapInfo       MapInfo        `json:"map_info"`
}
