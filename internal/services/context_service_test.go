package services

import (
	"context"
	"errors"
	"testing"

	"nodetours/internal/models/agent_models"
)

type stubSearchAPI struct {
	links   map[string][]string
	queries []string
}

func (s *stubSearchAPI) Search(_ context.Context, query string, _ int) []string {
	s.queries = append(s.queries, query)
	return s.links[query]
}

type stubScrapeAPI struct {
	places map[string][]agent_models.Place
}

func (s *stubScrapeAPI) Scrape(_ context.Context, pageURL string) []agent_models.Place {
	return s.places[pageURL]
}

type stubWeatherAPI struct {
	forecast agent_models.WeatherInfo
	err      error
	calls    int
}

func (s *stubWeatherAPI) Forecast(_ context.Context, _ string) (agent_models.WeatherInfo, error) {
	s.calls++
	return s.forecast, s.err
}

func (s *stubWeatherAPI) Configured() bool { return true }

type stubMapsAPI struct {
	info  agent_models.MapInfo
	err   error
	calls int
}

func (s *stubMapsAPI) Locate(_ context.Context, _ string) (agent_models.MapInfo, error) {
	s.calls++
	return s.info, s.err
}

func (s *stubMapsAPI) Configured() bool { return true }

func TestCollectContext_AggregatesPerQuery(t *testing.T) {
	search := &stubSearchAPI{links: map[string][]string{
		"q1": {"http://a"},
		"q2": {"http://b"},
	}}
	scrape := &stubScrapeAPI{places: map[string][]agent_models.Place{
		"http://a": {{Name: "Louvre", Description: "Museum"}},
		"http://b": {{Name: "Bistro", Description: "Food"}},
	}}
	weather := &stubWeatherAPI{forecast: agent_models.WeatherInfo{Location: "Paris"}}
	maps := &stubMapsAPI{info: agent_models.MapInfo{FormattedAddress: "Paris, France"}}

	svc := NewContextService(search, scrape, weather, maps, testLogger())

	queries := []agent_models.SearchQuery{
		{FeatureType: "place_to_visit", FeatureValue: "Paris", SearchQuery: "q1"},
		{FeatureType: "cuisine_preferences", FeatureValue: "local food", SearchQuery: "q2"},
		{FeatureType: "general", FeatureValue: "travel"}, // empty query, skipped
	}

	bundle := svc.CollectContext(context.Background(), queries, agent_models.TripFeatures{PlaceToVisit: "Paris"})

	if len(bundle.SearchResults) != 2 {
		t.Fatalf("expected 2 search results, got %d", len(bundle.SearchResults))
	}
	if bundle.SearchResults[0].Results[0].Name != "Louvre" {
		t.Fatalf("unexpected first result: %+v", bundle.SearchResults[0])
	}
	if bundle.SearchResults[1].Query != "q2" {
		t.Fatalf("results must preserve query order, got %+v", bundle.SearchResults[1])
	}
	if bundle.WeatherInfo.Location != "Paris" {
		t.Fatalf("weather not collected: %+v", bundle.WeatherInfo)
	}
	if bundle.MapInfo.FormattedAddress != "Paris, France" {
		t.Fatalf("map info not collected: %+v", bundle.MapInfo)
	}
}

func TestCollectContext_SkipsLookupsWithoutDestination(t *testing.T) {
	weather := &stubWeatherAPI{}
	maps := &stubMapsAPI{}
	svc := NewContextService(&stubSearchAPI{}, &stubScrapeAPI{}, weather, maps, testLogger())

	bundle := svc.CollectContext(context.Background(), nil, agent_models.TripFeatures{})

	if weather.calls != 0 || maps.calls != 0 {
		t.Fatalf("weather/maps must not be consulted without a destination (%d, %d)", weather.calls, maps.calls)
	}
	if bundle.SearchResults == nil || len(bundle.SearchResults) != 0 {
		t.Fatalf("search results must be empty, not nil: %+v", bundle.SearchResults)
	}
}

func TestCollectContext_SwallowsLookupErrors(t *testing.T) {
	weather := &stubWeatherAPI{err: errors.New("weather down")}
	maps := &stubMapsAPI{err: errors.New("maps down")}
	svc := NewContextService(&stubSearchAPI{}, &stubScrapeAPI{}, weather, maps, testLogger())

	bundle := svc.CollectContext(context.Background(), nil, agent_models.TripFeatures{PlaceToVisit: "Paris"})

	if bundle.WeatherInfo.Location != "" {
		t.Fatalf("failed weather lookup must leave the field empty: %+v", bundle.WeatherInfo)
	}
	if bundle.MapInfo.FormattedAddress != "" {
		t.Fatalf("failed map lookup must leave the field empty: %+v", bundle.MapInfo)
	}
}
