package llmfx

import (
	"log/slog"

	"go.uber.org/fx"

	"nodetours/internal/config"
	"nodetours/pkg/llm"
)

var Module = fx.Provide(
	ProvideCompletionClient,
)

// ProvideCompletionClient builds the configured LLM client.
func ProvideCompletionClient(cfg *config.Config, logger *slog.Logger) (llm.CompletionClient, error) {
	logger.Info("initializing completion client", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)

	return llm.NewCompletionClient(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLMAPIKey(),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
}
