package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"nodetours/pkg/llm"
)

const guardSystemPrompt = `
You are a content moderator for a travel planning assistant.
Your task is to determine if the user's input is:
1. Related to travel planning or travel information
2. Appropriate and does not contain harmful, offensive, or inappropriate content

Respond with a JSON object with the following fields:
- is_valid: true if the input passes both checks, false otherwise
- reason: If is_valid is false, provide a brief reason

Provide only the JSON, with no additional text.
`

type GuardServiceInterface interface {
	ValidateInput(ctx context.Context, userInput string) (bool, string)
}

type GuardService struct {
	client llm.CompletionClient
	logger *slog.Logger
}

func NewGuardService(client llm.CompletionClient, logger *slog.Logger) GuardServiceInterface {
	return &GuardService{
		client: client,
		logger: logger,
	}
}

type guardVerdict struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason"`
}

// ValidateInput checks that the input is travel-related and appropriate.
// A response that cannot be parsed rejects the input.
func (g *GuardService) ValidateInput(ctx context.Context, userInput string) (bool, string) {
	response, err := g.client.Complete(ctx, guardSystemPrompt, userInput, nil)
	if err != nil {
		g.logger.Error("guard completion failed", "error", err)
		return false, "Failed to validate input"
	}

	var verdict guardVerdict
	if err := json.Unmarshal([]byte(response), &verdict); err != nil {
		g.logger.Warn("guard returned non-JSON verdict", "error", err)
		return false, "Failed to validate input"
	}

	if !verdict.IsValid && verdict.Reason == "" {
		return false, "Invalid input"
	}
	return verdict.IsValid, verdict.Reason
}
