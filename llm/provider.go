// Package llm abstracts the two external capabilities the analysis engine
// consumes: text completion and embedding generation. Providers are treated
// as unreliable — slow, rate-limited, or returning malformed output — so
// callers bound every call with a timeout and validate completions before
// trusting them.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnavailable marks a capability as unreachable or errored. Components
// recover from it locally by falling back to their heuristic path.
var ErrUnavailable = errors.New("llm: capability unavailable")

// Provider is the capability contract consumed by the engine.
type Provider interface {
	// Complete sends a prompt and returns the generated text.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Embed generates fixed-length vectors for a batch of texts. For a
	// given model/version the output must be deterministic so that search
	// results are reproducible between calls.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Config configures a single provider endpoint.
type Config struct {
	Provider string `json:"provider" yaml:"provider"` // ollama, lmstudio, openai, custom
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// NewProvider creates a provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg), nil
	case "lmstudio":
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:1234"
		}
		return NewCompat(cfg), nil
	case "openai":
		return NewOpenAI(cfg), nil
	case "custom":
		return NewCompat(cfg), nil
	case "":
		return nil, fmt.Errorf("llm provider not specified")
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// completion output sanity bounds; anything outside is treated as malformed.
const (
	minCompletionChars = 1
	maxCompletionChars = 1 << 20
)

// CompleteChecked calls Complete with a timeout and validates the output.
// Any failure — transport error, timeout, empty or implausibly large
// response — is reported as ErrUnavailable so that the caller can degrade
// to its heuristic path.
func CompleteChecked(ctx context.Context, p Provider, prompt string, maxTokens int, timeout time.Duration) (string, error) {
	if p == nil {
		return "", ErrUnavailable
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := p.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	out = strings.TrimSpace(out)
	if len(out) < minCompletionChars || len(out) > maxCompletionChars {
		return "", fmt.Errorf("%w: implausible completion length %d", ErrUnavailable, len(out))
	}
	return out, nil
}
