package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	defaultMaxTokens = 4096
	defaultTimeout   = 120 * time.Second
)

// Generator sends a rendered prompt to an LLM and returns its raw text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Config selects and configures a provider. Empty APIKey falls back to the
// provider's conventional environment variable.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// DefaultModels are used when no model is configured.
var DefaultModels = map[string]string{
	"openai":     "gpt-4o",
	"anthropic":  "claude-sonnet-4-20250514",
	"openrouter": "anthropic/claude-sonnet-4",
}

// KeyEnv names the environment variable holding each provider's API key.
var KeyEnv = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// Names lists the supported providers.
func Names() []string {
	return []string{"openai", "anthropic", "openrouter"}
}

// New creates a provider by name.
func New(cfg Config) (Generator, error) {
	if _, ok := KeyEnv[cfg.Provider]; !ok {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(KeyEnv[cfg.Provider])
	}
	if cfg.APIKey == "" {
		return nil, &authError{message: KeyEnv[cfg.Provider] + " environment variable is not set"}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModels[cfg.Provider]
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg), nil
	case "openrouter":
		return NewOpenRouter(cfg), nil
	default:
		return NewAnthropic(cfg), nil
	}
}

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError reports whether err, or any error it wraps, is an
// authentication failure.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}
