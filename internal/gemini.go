package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient is the Gemini-backed provider, interchangeable with
// OpenAIClient behind the Completer interface.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int32
	timeout   time.Duration
	log       *zap.SugaredLogger
}

// NewGeminiClient creates the shared Gemini client handle.
func NewGeminiClient(ctx context.Context, cfg *Config, log *zap.SugaredLogger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		model:     cfg.GeminiModel,
		maxTokens: int32(cfg.MaxTokens),
		timeout:   cfg.SummaryTimeout,
		log:       log,
	}, nil
}

func (c *GeminiClient) Name() string { return ProviderGemini }

// Complete sends the prompt through the Gemini generate-content API.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
