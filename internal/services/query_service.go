package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"nodetours/internal/models/agent_models"
	"nodetours/pkg/llm"
)

const querySystemPrompt = `
You are a search query generator for a travel planning assistant.
Your task is to create effective search queries based on extracted travel features.
Generate search queries that will retrieve relevant information for each feature.

Return a JSON array of objects, each containing:
- "feature_type": The type of feature (place_to_visit, cuisine_preferences, place_preferences, transport_preferences)
- "feature_value": The specific value of the feature
- "search_query": An effective search query to get information about this feature

For example:
[
  {
    "feature_type": "place_to_visit",
    "feature_value": "Paris",
    "search_query": "Best time to visit Paris for tourists travel guide"
  },
  {
    "feature_type": "cuisine_preferences",
    "feature_value": "local food",
    "search_query": "Most authentic local food restaurants in Paris for tourists"
  }
]

Return only the JSON, with no additional text.
`

type QueryServiceInterface interface {
	GenerateQueries(ctx context.Context, features agent_models.TripFeatures) []agent_models.SearchQuery
}

type QueryService struct {
	client llm.CompletionClient
	logger *slog.Logger
}

func NewQueryService(client llm.CompletionClient, logger *slog.Logger) QueryServiceInterface {
	return &QueryService{
		client: client,
		logger: logger,
	}
}

var jsonArrayPattern = regexp.MustCompile(`(\[[\s\S]*\])`)

// GenerateQueries turns trip features into search queries. Without a
// destination it returns two generic queries immediately, no LLM call. Any
// LLM failure falls back to a deterministic query set, so the result is
// never empty.
func (q *QueryService) GenerateQueries(ctx context.Context, features agent_models.TripFeatures) []agent_models.SearchQuery {
	if features.PlaceToVisit == "" {
		q.logger.Warn("no destination in features, using generic queries")
		return q.fallbackQueries(features)
	}

	userPrompt := fmt.Sprintf(`
Generate search queries based on these travel features:

Place to visit: %s
Duration (days): %s
Cuisine preferences: %s
Place preferences: %s
Transport preferences: %s

Create at least one query for the place to visit, and one query for each preference if specified.
Each query should be specifically designed to retrieve the most relevant information for planning a trip.
`,
		features.PlaceToVisit,
		formatDuration(features.DurationDays),
		formatList(features.CuisinePreferences),
		formatList(features.PlacePreferences),
		formatValue(features.TransportPreferences),
	)

	response, err := q.client.Complete(ctx, querySystemPrompt, userPrompt, nil)
	if err != nil {
		q.logger.Error("query generation failed", "error", err)
		return q.fallbackQueries(features)
	}

	var queries []agent_models.SearchQuery
	if err := json.Unmarshal([]byte(response), &queries); err != nil {
		if match := jsonArrayPattern.FindString(response); match != "" {
			if err2 := json.Unmarshal([]byte(match), &queries); err2 == nil {
				return queries
			}
		}
		q.logger.Error("query response was not valid JSON", "error", err)
		return q.fallbackQueries(features)
	}

	if !validQueries(queries) {
		q.logger.Warn("LLM returned invalid query list format")
		return q.fallbackQueries(features)
	}

	q.logger.Info("generated search queries", "count", len(queries))
	return queries
}

func validQueries(queries []agent_models.SearchQuery) bool {
	return len(queries) > 0 && lo.EveryBy(queries, func(query agent_models.SearchQuery) bool {
		return query.FeatureType != "" && query.FeatureValue != "" && query.SearchQuery != ""
	})
}

// fallbackQueries builds the deterministic query set: destination attractions,
// weather, transport, cuisines, then places.
func (q *QueryService) fallbackQueries(features agent_models.TripFeatures) []agent_models.SearchQuery {
	q.logger.Info("using fallback query generation")

	destination := features.PlaceToVisit
	if destination == "" {
		return []agent_models.SearchQuery{
			{
				FeatureType:  agent_models.FeatureTypeGeneral,
				FeatureValue: "travel",
				SearchQuery:  "popular tourist destinations",
			},
			{
				FeatureType:  agent_models.FeatureTypeGeneral,
				FeatureValue: "travel planning",
				SearchQuery:  "travel planning tips",
			},
		}
	}

	queries := []agent_models.SearchQuery{
		{
			FeatureType:  agent_models.FeatureTypePlaceToVisit,
			FeatureValue: destination,
			SearchQuery:  fmt.Sprintf("top attractions in %s tourist guide", destination),
		},
		{
			FeatureType:  agent_models.FeatureTypePlaceToVisit,
			FeatureValue: destination,
			SearchQuery:  fmt.Sprintf("best time to visit %s weather guide", destination),
		},
	}

	if features.TransportPreferences != "" {
		queries = append(queries, agent_models.SearchQuery{
			FeatureType:  agent_models.FeatureTypeTransportPreferences,
			FeatureValue: features.TransportPreferences,
			SearchQuery:  fmt.Sprintf("%s options in %s for tourists", features.TransportPreferences, destination),
		})
	} else {
		queries = append(queries, agent_models.SearchQuery{
			FeatureType:  agent_models.FeatureTypeTransportPreferences,
			FeatureValue: "public transport",
			SearchQuery:  fmt.Sprintf("how to get around %s public transportation", destination),
		})
	}

	if len(features.CuisinePreferences) > 0 {
		queries = append(queries, lo.Map(features.CuisinePreferences, func(cuisine string, _ int) agent_models.SearchQuery {
			return agent_models.SearchQuery{
				FeatureType:  agent_models.FeatureTypeCuisinePreferences,
				FeatureValue: cuisine,
				SearchQuery:  fmt.Sprintf("best %s in %s for tourists", cuisine, destination),
			}
		})...)
	} else {
		queries = append(queries, agent_models.SearchQuery{
			FeatureType:  agent_models.FeatureTypeCuisinePreferences,
			FeatureValue: "local food",
			SearchQuery:  fmt.Sprintf("must try local food in %s for tourists", destination),
		})
	}

	queries = append(queries, lo.Map(features.PlacePreferences, func(preference string, _ int) agent_models.SearchQuery {
		return agent_models.SearchQuery{
			FeatureType:  agent_models.FeatureTypePlacePreferences,
			FeatureValue: preference,
			SearchQuery:  fmt.Sprintf("best %s in %s tourist guide", preference, destination),
		}
	})...)

	return queries
}

func formatDuration(days *int) string {
	if days == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%d", *days)
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "Not specified"
	}
	return strings.Join(values, ", ")
}

func formatValue(value string) string {
	if value == "" {
		return "Not specified"
	}
	return value
}
