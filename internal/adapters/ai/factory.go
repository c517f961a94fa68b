package ai

import (
	"fmt"

	"go.uber.org/zap"
)

// Provider names accepted in configuration
const (
	ProviderNone      = "none"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default models per provider
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

// Config holds configuration for creating a generator
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewFromConfig builds a generator for the configured provider. A provider
// without an API key is treated as unconfigured so calls fall back instead
// of failing at request time.
func NewFromConfig(cfg Config, logger *zap.Logger) (*Generator, error) {
	var provider Provider

	switch cfg.Provider {
	case "", ProviderNone:
	case ProviderOpenAI:
		if cfg.APIKey != "" {
			provider = NewOpenAIProvider(cfg.APIKey, modelOrDefault(cfg.Model, DefaultOpenAIModel), cfg.BaseURL)
		}
	case ProviderAnthropic:
		if cfg.APIKey != "" {
			provider = NewAnthropicProvider(cfg.APIKey, modelOrDefault(cfg.Model, DefaultAnthropicModel), cfg.BaseURL)
		}
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}

	if provider == nil && cfg.Provider != "" && cfg.Provider != ProviderNone {
		logger.Warn("AI provider configured without API key; using fallback texts",
			zap.String("provider", cfg.Provider))
	}

	return NewGenerator(provider, logger), nil
}

func modelOrDefault(model, def string) string {
	if model == "" {
		return def
	}
	return model
}
