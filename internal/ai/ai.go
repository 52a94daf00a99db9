// Package ai provides interfaces and implementations for generating chat
// completions against different LLM gateways.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/edgard/historybot/internal/config"
)

// FallbackReply is returned for empty input without touching the gateway.
const FallbackReply = "? what do you mean"

var (
	// ErrPromptMissing means no system prompt was resolvable for a request.
	ErrPromptMissing = errors.New("system prompt missing")
	// ErrGateway wraps transport or API failures from the LLM gateway.
	ErrGateway = errors.New("gateway request failed")
)

// CompletionResult is one completion with the gateway's usage counters.
// TotalTokens always equals PromptTokens + CompletionTokens.
type CompletionResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client generates chat completions. Complete sends a two-message request
// (system prompt first, then user content) and returns the first choice's
// text with usage counters.
type Client interface {
	Complete(ctx context.Context, userInput, systemPrompt string) (*CompletionResult, error)
}

// NewClient creates a Client for the configured backend. It acts as a
// factory, selecting either the OpenRouter or Gemini implementation.
func NewClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if log == nil {
		log = slog.Default()
	}
	log.Info("Initializing AI client", "backend", cfg.Backend, "model", cfg.Model)

	switch cfg.Backend {
	case "openrouter":
		return newOpenRouterClient(cfg, log), nil
	case "gemini":
		client, err := newGeminiClient(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI backend specified: %s", cfg.Backend)
	}
}

// Generate returns the completion for userInput. Empty input yields a
// result holding the fixed fallback text with no gateway call. The
// systemPrompt parameter overrides the configured instruction when
// non-empty.
func Generate(ctx context.Context, c Client, userInput, systemPrompt string) (*CompletionResult, error) {
	if userInput == "" {
		return &CompletionResult{Text: FallbackReply}, nil
	}

	return c.Complete(ctx, userInput, systemPrompt)
}
