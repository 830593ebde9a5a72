package services

import (
	"context"
	"errors"
	"testing"

	"nodetours/internal/models/agent_models"
)

func intPtr(n int) *int { return &n }

func TestGenerateQueries_NoDestinationSkipsLLM(t *testing.T) {
	client := &stubClient{responses: []string{`should not be used`}}
	svc := NewQueryService(client, testLogger())

	queries := svc.GenerateQueries(context.Background(), agent_models.TripFeatures{})

	if client.calls != 0 {
		t.Fatalf("expected no LLM call without a destination, got %d", client.calls)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 generic queries, got %d", len(queries))
	}
	if queries[0].SearchQuery != "popular tourist destinations" || queries[1].SearchQuery != "travel planning tips" {
		t.Fatalf("unexpected generic queries: %+v", queries)
	}
	for _, query := range queries {
		if query.FeatureType != agent_models.FeatureTypeGeneral {
			t.Fatalf("generic query has feature_type %q", query.FeatureType)
		}
	}
}

func TestGenerateQueries_ParsesLLMOutput(t *testing.T) {
	client := &stubClient{responses: []string{`[
		{"feature_type": "place_to_visit", "feature_value": "Paris", "search_query": "Best time to visit Paris"},
		{"feature_type": "cuisine_preferences", "feature_value": "local food", "search_query": "Best local food in Paris"}
	]`}}
	svc := NewQueryService(client, testLogger())

	queries := svc.GenerateQueries(context.Background(), agent_models.TripFeatures{PlaceToVisit: "Paris"})

	if len(queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(queries))
	}
	if queries[1].FeatureValue != "local food" {
		t.Fatalf("queries[1] = %+v", queries[1])
	}
}

func TestGenerateQueries_FallbackOrdering(t *testing.T) {
	client := &stubClient{err: errors.New("model unavailable")}
	svc := NewQueryService(client, testLogger())

	features := agent_models.TripFeatures{
		PlaceToVisit:         "Paris",
		DurationDays:         intPtr(3),
		CuisinePreferences:   []string{"cheese", "wine"},
		PlacePreferences:     []string{"museums"},
		TransportPreferences: "metro",
	}

	queries := svc.GenerateQueries(context.Background(), features)

	want := []string{
		"top attractions in Paris tourist guide",
		"best time to visit Paris weather guide",
		"metro options in Paris for tourists",
		"best cheese in Paris for tourists",
		"best wine in Paris for tourists",
		"best museums in Paris tourist guide",
	}
	if len(queries) != len(want) {
		t.Fatalf("expected %d queries, got %d: %+v", len(want), len(queries), queries)
	}
	for i, query := range queries {
		if query.SearchQuery != want[i] {
			t.Fatalf("queries[%d] = %q, want %q", i, query.SearchQuery, want[i])
		}
	}
}

func TestGenerateQueries_FallbackDefaultsWithoutPreferences(t *testing.T) {
	client := &stubClient{err: errors.New("model unavailable")}
	svc := NewQueryService(client, testLogger())

	queries := svc.GenerateQueries(context.Background(), agent_models.TripFeatures{PlaceToVisit: "Oslo"})

	want := []string{
		"top attractions in Oslo tourist guide",
		"best time to visit Oslo weather guide",
		"how to get around Oslo public transportation",
		"must try local food in Oslo for tourists",
	}
	if len(queries) != len(want) {
		t.Fatalf("expected %d queries, got %d", len(want), len(queries))
	}
	for i, query := range queries {
		if query.SearchQuery != want[i] {
			t.Fatalf("queries[%d] = %q, want %q", i, query.SearchQuery, want[i])
		}
	}
}

func TestGenerateQueries_RejectsMalformedElements(t *testing.T) {
	// Missing search_query on the second element invalidates the whole list.
	client := &stubClient{responses: []string{`[
		{"feature_type": "place_to_visit", "feature_value": "Paris", "search_query": "Best time to visit Paris"},
		{"feature_type": "cuisine_preferences", "feature_value": "local food"}
	]`}}
	svc := NewQueryService(client, testLogger())

	queries := svc.GenerateQueries(context.Background(), agent_models.TripFeatures{PlaceToVisit: "Paris"})

	if queries[0].SearchQuery != "top attractions in Paris tourist guide" {
		t.Fatalf("expected fallback queries, got %+v", queries)
	}
}

func TestGenerateQueries_SalvagesWrappedArray(t *testing.T) {
	client := &stubClient{responses: []string{
		"Here you go:\n[{\"feature_type\": \"place_to_visit\", \"feature_value\": \"Paris\", \"search_query\": \"Paris travel guide\"}]",
	}}
	svc := NewQueryService(client, testLogger())

	queries := svc.GenerateQueries(context.Background(), agent_models.TripFeatures{PlaceToVisit: "Paris"})
	if len(queries) != 1 || queries[0].SearchQuery != "Paris travel guide" {
		t.Fatalf("expected salvaged array, got %+v", queries)
	}
}
