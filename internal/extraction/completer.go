// Package extraction turns free-form scheme documents into raw scheme objects
// by asking an LLM backend for a JSON array. The output is unvalidated and is
// meant to be fed to the canonicalizer.
package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eligo/pkg/platform/sentinel"
)

// Completer sends one system+user prompt pair to a chat model and returns the
// text of its reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Provider names a completion backend.
type Provider string

const (
	ProviderNone      Provider = ""
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
)

// Config selects and configures a backend.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
	// BaseURL is only used by the OpenAI-compatible backend.
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// Enabled reports whether a backend is configured.
func (c Config) Enabled() bool {
	return c.Provider != ProviderNone && c.APIKey != ""
}

// NewCompleter builds the backend named by cfg.Provider. An unconfigured
// provider yields sentinel.ErrUnavailable.
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("extraction backend not configured: %w", sentinel.ErrUnavailable)
	}
	switch Provider(strings.ToLower(string(cfg.Provider))) {
	case ProviderAnthropic:
		return NewAnthropicCompleter(cfg), nil
	case ProviderGemini:
		return NewGeminiCompleter(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAICompleter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown extraction provider %q", cfg.Provider)
	}
}
