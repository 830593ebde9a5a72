package apisfx

import (
	"log/slog"

	"go.uber.org/fx"

	"nodetours/internal/apis"
	"nodetours/internal/config"
	"nodetours/pkg/cache"
)

var Module = fx.Provide(
	ProvideCacheStore,
	ProvideSearchAPI,
	ProvideScrapeAPI,
	ProvideWeatherAPI,
	ProvideMapsAPI,
)

func ProvideCacheStore(cfg *config.Config, logger *slog.Logger) (*cache.Store, error) {
	return cache.NewStore(cfg.Cache.Dir, logger)
}

func ProvideSearchAPI(logger *slog.Logger) apis.SearchAPI {
	return apis.NewSearchAPI(logger)
}

func ProvideScrapeAPI(cfg *config.Config, store *cache.Store, logger *slog.Logger) apis.ScrapeAPI {
	return apis.NewScrapeAPI(cfg.FirecrawlAPIKey(), store, logger)
}

func ProvideWeatherAPI(cfg *config.Config, logger *slog.Logger) apis.WeatherAPI {
	return apis.NewWeatherAPI(cfg.APIs.WeatherProvider, cfg.WeatherAPIKey(), logger)
}

func ProvideMapsAPI(cfg *config.Config, logger *slog.Logger) apis.MapsAPI {
	return apis.NewMapsAPI(cfg.APIs.MapsProvider, cfg.MapsAPIKey(), logger)
}
