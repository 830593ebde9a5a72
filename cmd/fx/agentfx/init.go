package agentfx

import (
	"log/slog"

	"go.uber.org/fx"

	"nodetours/internal/api/controllers"
	"nodetours/internal/apis"
	"nodetours/internal/config"
	"nodetours/internal/services"
	"nodetours/pkg/llm"
)

var Module = fx.Provide(
	ProvideGuardService,
	ProvideFeatureService,
	ProvideQueryService,
	ProvideContextService,
	ProvideOutputService,
	ProvideAgentService,
	ProvidePlanController,
)

func ProvideGuardService(client llm.CompletionClient, logger *slog.Logger) services.GuardServiceInterface {
	return services.NewGuardService(client, logger)
}

func ProvideFeatureService(client llm.CompletionClient, logger *slog.Logger) services.FeatureServiceInterface {
	return services.NewFeatureService(client, logger)
}

func ProvideQueryService(client llm.CompletionClient, logger *slog.Logger) services.QueryServiceInterface {
	return services.NewQueryService(client, logger)
}

func ProvideContextService(
	searchAPI apis.SearchAPI,
	scrapeAPI apis.ScrapeAPI,
	weatherAPI apis.WeatherAPI,
	mapsAPI apis.MapsAPI,
	logger *slog.Logger,
) services.ContextServiceInterface {
	return services.NewContextService(searchAPI, scrapeAPI, weatherAPI, mapsAPI, logger)
}

func ProvideOutputService(client llm.CompletionClient, logger *slog.Logger) services.OutputServiceInterface {
	return services.NewOutputService(client, logger)
}

func ProvideAgentService(
	guard services.GuardServiceInterface,
	features services.FeatureServiceInterface,
	queries services.QueryServiceInterface,
	contextSvc services.ContextServiceInterface,
	output services.OutputServiceInterface,
	cfg *config.Config,
	logger *slog.Logger,
) services.AgentServiceInterface {
	return services.NewAgentService(guard, features, queries, contextSvc, output, cfg.History.MaxTurns, logger)
}

func ProvidePlanController(agentService services.AgentServiceInterface, cfg *config.Config) *controllers.PlanController {
	return controllers.NewPlanController(agentService, cfg.App.Version)
}
