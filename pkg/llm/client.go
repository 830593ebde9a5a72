package llm

import (
	"context"
	"fmt"
	"strings"
)

// Message is one prior turn of the conversation, role "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionClient abstracts a generative-model provider. Implementations
// return the raw response text; callers own all shape validation of it.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, history []Message) (string, error)
	Close() error
}

// Config selects and tunes a provider.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// NewCompletionClient creates an OpenAI or Gemini client based on config.
func NewCompletionClient(cfg Config) (CompletionClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(cfg)
	case "gemini":
		return NewGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}
