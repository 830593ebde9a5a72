package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Fatalf("default provider = %q", cfg.LLM.Provider)
	}
	if cfg.History.MaxTurns != 100 {
		t.Fatalf("default max_turns = %d", cfg.History.MaxTurns)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.App.Port != 8000 {
		t.Fatalf("port = %d", cfg.App.Port)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
llm:
  provider: openai
  model: gpt-4o-mini
history:
  max_turns: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("llm = %+v", cfg.LLM)
	}
	if cfg.History.MaxTurns != 5 {
		t.Fatalf("max_turns = %d", cfg.History.MaxTurns)
	}
	// Untouched sections keep their defaults.
	if cfg.App.Port != 8000 {
		t.Fatalf("port = %d", cfg.App.Port)
	}
	if cfg.LLM.MaxTokens != 4096 {
		t.Fatalf("max_tokens = %d", cfg.LLM.MaxTokens)
	}
}

func TestLoad_RejectsInvalidProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  provider: anthropic\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unsupported provider")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(": not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAPIKeys_ComeFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")

	cfg := Defaults()
	if cfg.LLMAPIKey() != "gem-key" {
		t.Fatalf("gemini key = %q", cfg.LLMAPIKey())
	}

	cfg.LLM.Provider = "openai"
	if cfg.LLMAPIKey() != "oai-key" {
		t.Fatalf("openai key = %q", cfg.LLMAPIKey())
	}
}
