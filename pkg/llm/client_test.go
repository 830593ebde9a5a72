package llm

import (
	"strings"
	"testing"
)

func TestNewCompletionClient_UnsupportedProvider(t *testing.T) {
	_, err := NewCompletionClient(Config{Provider: "anthropic", APIKey: "key"})
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	if !strings.Contains(err.Error(), "unsupported LLM provider") {
		t.Fatalf("error = %v", err)
	}
}

func TestNewCompletionClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewCompletionClient(Config{Provider: "openai"}); err == nil {
		t.Fatal("expected error for missing OpenAI key")
	}
	if _, err := NewCompletionClient(Config{Provider: "gemini"}); err == nil {
		t.Fatal("expected error for missing Gemini key")
	}
}
