package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/edgard/historybot/internal/config"
)

const minHTTPClientTimeout = 10 * time.Second

// openRouterClient talks to an OpenAI-compatible chat-completion endpoint
// (OpenRouter by default).
type openRouterClient struct {
	client      *openai.Client
	model       string
	instruction string
	timeout     time.Duration
	log         *slog.Logger
}

func newOpenRouterClient(cfg config.AIConfig, log *slog.Logger) *openRouterClient {
	clientCfg := openai.DefaultConfig(cfg.Token)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{
		Timeout: max(cfg.Timeout, minHTTPClientTimeout),
	}

	return &openRouterClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		instruction: cfg.Instruction,
		timeout:     cfg.Timeout,
		log:         log.With("component", "ai", "backend", "openrouter"),
	}
}

// Complete sends the system and user messages, in that order, and extracts
// the first choice. Token usage and wall-clock duration are logged for
// diagnostics only. No retries: a transient failure surfaces immediately.
func (c *openRouterClient) Complete(ctx context.Context, userInput, systemPrompt string) (*CompletionResult, error) {
	instruction := systemPrompt
	if instruction == "" {
		instruction = c.instruction
	}
	if instruction == "" {
		return nil, ErrPromptMissing
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: userInput},
		},
	})
	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("%w: chat completion failed: %v", ErrGateway, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response choices available", ErrGateway)
	}

	result := &CompletionResult{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}

	c.log.Info("Chat completion finished",
		"model", c.model,
		"prompt_tokens", result.PromptTokens,
		"completion_tokens", result.CompletionTokens,
		"total_tokens", result.TotalTokens,
		"duration", duration)

	return result, nil
}
