package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"nodetours/internal/models/agent_models"
)

const geocodeEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// MapsAPI geocodes a destination name.
type MapsAPI interface {
	Locate(ctx context.Context, location string) (agent_models.MapInfo, error)
	Configured() bool
}

type mapsAPI struct {
	provider   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewMapsAPI wraps the Google geocoding endpoint. Without an API key it runs
// in mock mode.
func NewMapsAPI(provider, apiKey string, logger *slog.Logger) MapsAPI {
	if provider == "googlemaps" && apiKey == "" {
		logger.Warn("MAPS_API_KEY not found, falling back to mock mode")
		provider = "mock"
	}
	return &mapsAPI{
		provider:   provider,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location agent_models.LatLng `json:"location"`
		} `json:"geometry"`
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

// Configured reports whether a real provider backs this wrapper.
func (m *mapsAPI) Configured() bool {
	return m.provider == "googlemaps"
}

func (m *mapsAPI) Locate(ctx context.Context, location string) (agent_models.MapInfo, error) {
	if m.provider != "googlemaps" {
		return mockMapInfo(location), nil
	}

	info, err := m.fetchLocation(ctx, location)
	if err != nil {
		m.logger.Error("geocode lookup failed, using mock location", "location", location, "error", err)
		return mockMapInfo(location), nil
	}
	return info, nil
}

func (m *mapsAPI) fetchLocation(ctx context.Context, location string) (agent_models.MapInfo, error) {
	params := url.Values{}
	params.Set("address", location)
	params.Set("key", m.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, geocodeEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return agent_models.MapInfo{}, err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return agent_models.MapInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return agent_models.MapInfo{}, fmt.Errorf("maps API returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return agent_models.MapInfo{}, err
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return agent_models.MapInfo{}, fmt.Errorf("maps API returned status %q", decoded.Status)
	}

	result := decoded.Results[0]
	return agent_models.MapInfo{
		FormattedAddress: result.FormattedAddress,
		Location:         result.Geometry.Location,
		PlaceID:          result.PlaceID,
	}, nil
}

func mockMapInfo(location string) agent_models.MapInfo {
	return agent_models.MapInfo{
		FormattedAddress: location + ", Country",
		Location:         agent_models.LatLng{Lat: 40.7128, Lng: -74.0060},
		PlaceID:          "mock-place-id",
	}
}
