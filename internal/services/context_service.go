package services

import (
	"context"
	"log/slog"

	"nodetours/internal/apis"
	"nodetours/internal/models/agent_models"
)

type ContextServiceInterface interface {
	CollectContext(ctx context.Context, queries []agent_models.SearchQuery, features agent_models.TripFeatures) agent_models.ContextBundle
}

type ContextService struct {
	searchAPI  apis.SearchAPI
	scrapeAPI  apis.ScrapeAPI
	weatherAPI apis.WeatherAPI
	mapsAPI    apis.MapsAPI
	logger     *slog.Logger
}

func NewContextService(
	searchAPI apis.SearchAPI,
	scrapeAPI apis.ScrapeAPI,
	weatherAPI apis.WeatherAPI,
	mapsAPI apis.MapsAPI,
	logger *slog.Logger,
) ContextServiceInterface {
	return &ContextService{
		searchAPI:  searchAPI,
		scrapeAPI:  scrapeAPI,
		weatherAPI: weatherAPI,
		mapsAPI:    mapsAPI,
		logger:     logger,
	}
}

// CollectContext gathers search, weather, and map context for the trip.
// Queries run sequentially, one search link per query, each scraped for
// places. Weather and map lookups only happen when a destination is known;
// their failures are logged and leave the fields empty.
func (c *ContextService) CollectContext(ctx context.Context, queries []agent_models.SearchQuery, features agent_models.TripFeatures) agent_models.ContextBundle {
	bundle := agent_models.ContextBundle{
		SearchResults: []agent_models.SearchResult{},
	}

	for _, query := range queries {
		if query.SearchQuery == "" {
			continue
		}

		links := c.searchAPI.Search(ctx, query.SearchQuery, 1)
		var places []agent_models.Place
		for _, link := range links {
			places = append(places, c.scrapeAPI.Scrape(ctx, link)...)
		}

		bundle.SearchResults = append(bundle.SearchResults, agent_models.SearchResult{
			FeatureType:  query.FeatureType,
			FeatureValue: query.FeatureValue,
			Query:        query.SearchQuery,
			Results:      places,
		})
	}

	if features.PlaceToVisit != "" {
		weather, err := c.weatherAPI.Forecast(ctx, features.PlaceToVisit)
		if err != nil {
			c.logger.Error("error fetching weather information", "error", err)
		} else {
			bundle.WeatherInfo = weather
		}

		mapInfo, err := c.mapsAPI.Locate(ctx, features.PlaceToVisit)
		if err != nil {
			c.logger.Error("error fetching map information", "error", err)
		} else {
			bundle.MapInfo = mapInfo
		}
	}

	return bundle
}
