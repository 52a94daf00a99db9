package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/edgard/historybot/internal/config"
)

// geminiClient implements Client on Google's Gemini API. Selected with
// ai.backend=gemini; the default backend is OpenRouter.
type geminiClient struct {
	client      *genai.Client
	model       string
	instruction string
	timeout     time.Duration
	log         *slog.Logger
}

func newGeminiClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (*geminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiClient{
		client:      gi,
		model:       cfg.Model,
		instruction: cfg.Instruction,
		timeout:     cfg.Timeout,
		log:         log.With("component", "ai", "backend", "gemini"),
	}, nil
}

// Complete generates content with the resolved prompt as the system
// instruction. Gemini reports prompt and candidate token counts; the total
// is derived from those two so the usage counters stay consistent.
func (c *geminiClient) Complete(ctx context.Context, userInput, systemPrompt string) (*CompletionResult, error) {
	instruction := systemPrompt
	if instruction == "" {
		instruction = c.instruction
	}
	if instruction == "" {
		return nil, ErrPromptMissing
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contentCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
	}

	startTime := time.Now()
	resp, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(userInput), contentCfg)
	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("%w: generate content failed: %v", ErrGateway, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no response candidates available", ErrGateway)
	}

	replyText := resp.Text()
	if replyText == "" {
		return nil, fmt.Errorf("%w: empty response text", ErrGateway)
	}

	result := &CompletionResult{Text: replyText}
	if usage := resp.UsageMetadata; usage != nil {
		result.PromptTokens = int(usage.PromptTokenCount)
		result.CompletionTokens = int(usage.CandidatesTokenCount)
		result.TotalTokens = result.PromptTokens + result.CompletionTokens
	}

	c.log.Info("Chat completion finished",
		"model", c.model,
		"prompt_tokens", result.PromptTokens,
		"completion_tokens", result.CompletionTokens,
		"total_tokens", result.TotalTokens,
		"duration", duration)

	return result, nil
}
