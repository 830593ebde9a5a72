package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"nodetours/pkg/utils"
)

const geminiCallTimeout = 30 * time.Second

// GeminiClient implements CompletionClient using Google's Gemini models.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewGeminiClient creates a new Gemini completion client.
func NewGeminiClient(cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, utils.ErrMissingAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string, history []Message) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(c.temperature)
	if c.maxTokens > 0 {
		m.SetMaxOutputTokens(int32(c.maxTokens))
	}
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, geminiCallTimeout)
	defer cancel()

	var resp *genai.GenerateContentResponse
	var err error
	if len(history) > 0 {
		cs := m.StartChat()
		cs.History = toGeminiHistory(history)
		resp, err = cs.SendMessage(ctxWithTimeout, genai.Text(userPrompt))
	} else {
		resp, err = m.GenerateContent(ctxWithTimeout, genai.Text(userPrompt))
	}
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// toGeminiHistory converts prior turns to Gemini chat content. Gemini names
// the assistant role "model".
func toGeminiHistory(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return contents
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
