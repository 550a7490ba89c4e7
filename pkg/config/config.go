package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Supported completion providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	// ErrUnknownProvider is returned for a provider name outside the supported set.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrMissingAPIKey is returned when the selected provider has no API key.
	ErrMissingAPIKey = errors.New("APIKey is not set")
)

// Config holds all runtime configuration for the chat loop.
type Config struct {
	Provider        string
	Model           string
	APIKey          string
	BaseURL         string
	PersonaPath     string
	MaxHistoryTurns int
	Verbose         bool
	LogLevel        string
}

// envSpec mirrors the environment variables read by LoadEnv.
type envSpec struct {
	Provider        string `envconfig:"LLM_PROVIDER"`
	Model           string `envconfig:"LLM_MODEL"`
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
	GoogleAPIKey    string `envconfig:"GOOGLE_API_KEY"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `envconfig:"OPENAI_BASE_URL"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
}

// DefaultConfig returns a baseline configuration without side effects.
// Provider and Model stay empty so LoadEnv can fill them.
func DefaultConfig() Config {
	return Config{
		MaxHistoryTurns: 0,
		Verbose:         false,
	}
}

// LoadEnv fills fields that are still empty in cfg from the environment, so
// values set by flags win. The API key is read from the variable that belongs
// to the resolved provider.
func LoadEnv(cfg Config) (Config, error) {
	var env envSpec
	if err := envconfig.Process("", &env); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}

	cfg.Provider = firstNonEmpty(cfg.Provider, env.Provider, ProviderGemini)
	cfg.Model = firstNonEmpty(cfg.Model, env.Model)
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, env.LogLevel)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini:
		cfg.APIKey = firstNonEmpty(cfg.APIKey, env.GeminiAPIKey, env.GoogleAPIKey)
	case ProviderOpenAI:
		cfg.APIKey = firstNonEmpty(cfg.APIKey, env.OpenAIAPIKey)
		cfg.BaseURL = firstNonEmpty(cfg.BaseURL, env.OpenAIBaseURL)
	case ProviderAnthropic:
		cfg.APIKey = firstNonEmpty(cfg.APIKey, env.AnthropicAPIKey)
	}
	return cfg, nil
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderGemini
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.PersonaPath = strings.TrimSpace(cfg.PersonaPath)
	cfg.LogLevel = strings.TrimSpace(cfg.LogLevel)

	if cfg.MaxHistoryTurns < 0 {
		cfg.MaxHistoryTurns = 0
	}
	// Windows hold whole user/model exchanges.
	if cfg.MaxHistoryTurns%2 == 1 {
		cfg.MaxHistoryTurns++
	}
	return cfg
}

// Validate reports configuration that cannot produce a working client.
func Validate(cfg Config) error {
	switch cfg.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, cfg.Provider)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
