package apis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"nodetours/internal/models/agent_models"
	"nodetours/pkg/cache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScrape_ServesFromCache(t *testing.T) {
	store, err := cache.NewStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	pageURL := "https://example.com/top-attractions"
	cached := []agent_models.Place{{Name: "Louvre", Description: "Museum"}}
	store.Put(pageURL, cached)

	// No API key and no reachable endpoint: a hit proves no network call
	// was attempted.
	api := NewScrapeAPI("", store, testLogger())

	got := api.Scrape(context.Background(), pageURL)
	if len(got) != 1 || got[0].Name != "Louvre" {
		t.Fatalf("expected cached places, got %+v", got)
	}
}

func TestWeather_MockProvider(t *testing.T) {
	api := NewWeatherAPI("mock", "", testLogger())

	if api.Configured() {
		t.Fatal("mock provider must not report as configured")
	}

	forecast, err := api.Forecast(context.Background(), "Bloomington")
	if err != nil {
		t.Fatalf("mock forecast must not error: %v", err)
	}
	if forecast.Location != "Bloomington" {
		t.Fatalf("location = %q", forecast.Location)
	}
	if len(forecast.FiveDayForecast) != 5 {
		t.Fatalf("expected 5 days, got %d", len(forecast.FiveDayForecast))
	}
	if forecast.FiveDayForecast[0].Description != "few clouds" {
		t.Fatalf("day 1 = %+v", forecast.FiveDayForecast[0])
	}
}

func TestWeather_MissingKeyFallsBackToMock(t *testing.T) {
	api := NewWeatherAPI("openweathermap", "", testLogger())
	if api.Configured() {
		t.Fatal("missing key must downgrade to mock mode")
	}
}

func TestMaps_MockProvider(t *testing.T) {
	api := NewMapsAPI("mock", "", testLogger())

	info, err := api.Locate(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("mock locate must not error: %v", err)
	}
	if info.FormattedAddress != "Paris, Country" {
		t.Fatalf("formatted_address = %q", info.FormattedAddress)
	}
	if info.PlaceID != "mock-place-id" {
		t.Fatalf("place_id = %q", info.PlaceID)
	}
}

func TestMaps_MissingKeyFallsBackToMock(t *testing.T) {
	api := NewMapsAPI("googlemaps", "", testLogger())
	if api.Configured() {
		t.Fatal("missing key must downgrade to mock mode")
	}
}
