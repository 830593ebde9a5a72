// Package config loads the planner configuration: a YAML file merged over
// built-in defaults, with API keys taken from the environment only.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the planner.
type Config struct {
	App     AppConfig     `yaml:"app"`
	LLM     LLMConfig     `yaml:"llm"`
	APIs    APIsConfig    `yaml:"apis"`
	Cache   CacheConfig   `yaml:"cache"`
	History HistoryConfig `yaml:"history"`
}

type AppConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Version string `yaml:"version"`
}

type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "gemini" | "openai"
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type APIsConfig struct {
	WeatherProvider string `yaml:"weather_provider"` // "openweathermap" | "mock"
	MapsProvider    string `yaml:"maps_provider"`    // "googlemaps" | "mock"
}

type CacheConfig struct {
	Dir string `yaml:"dir"`
}

type HistoryConfig struct {
	// MaxTurns bounds the retained conversation turns. 0 keeps everything.
	MaxTurns int `yaml:"max_turns"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Host:    "0.0.0.0",
			Port:    8000,
			Version: "0.1.0",
		},
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-1.5-flash",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		APIs: APIsConfig{
			WeatherProvider: "openweathermap",
			MapsProvider:    "googlemaps",
		},
		Cache: CacheConfig{
			Dir: "cache",
		},
		History: HistoryConfig{
			MaxTurns: 100,
		},
	}
}

// Load reads the YAML file at path and merges it over Defaults. A missing
// file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that the config has usable values.
func Validate(cfg *Config) error {
	if cfg.App.Port < 0 || cfg.App.Port > 65535 {
		return fmt.Errorf("app.port must be between 0 and 65535")
	}
	switch cfg.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("llm.provider must be one of: gemini, openai")
	}
	if cfg.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be >= 1")
	}
	if cfg.History.MaxTurns < 0 {
		return fmt.Errorf("history.max_turns must be >= 0")
	}
	return nil
}

// LLMAPIKey returns the API key for the configured LLM provider. Keys live
// only in the environment, never in the YAML file.
func (c *Config) LLMAPIKey() string {
	switch c.LLM.Provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

func (c *Config) WeatherAPIKey() string {
	return os.Getenv("WEATHER_API_KEY")
}

func (c *Config) MapsAPIKey() string {
	return os.Getenv("MAPS_API_KEY")
}

func (c *Config) FirecrawlAPIKey() string {
	return os.Getenv("FIRECRAWL_API_KEY")
}

// AuthSecret enables the bearer-token middleware when non-empty.
func (c *Config) AuthSecret() string {
	return os.Getenv("AUTH_SECRET")
}
