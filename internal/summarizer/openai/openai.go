// Package openai summarizes text through an OpenAI-compatible chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/jhuonas/ai-snippet-service/internal/summarizer"
)

const (
	DefaultModel     = "gpt-4o-mini"
	DefaultMaxTokens = 100
)

var ErrMissingAPIKey = errors.New("openai: api key not configured")

type Config struct {
	APIKey string
	// BaseURL overrides the API root (e.g. a compatible gateway); empty uses api.openai.com.
	BaseURL   string
	Model     string
	MaxTokens int
	MaxWords  int
	Timeout   time.Duration
}

type Provider struct {
	client *openai.Client
	cfg    Config
}

func New(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = summarizer.DefaultMaxWords
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Provider{client: openai.NewClientWithConfig(clientConfig), cfg: cfg}
}

func (p *Provider) Summarize(ctx context.Context, text string) (string, error) {
	if p.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	req := openai.ChatCompletionRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: summarizer.Prompt(p.cfg.MaxWords, text),
			},
		},
	}
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", summarizer.ErrEmptySummary)
	}
	return summarizer.Clean(resp.Choices[0].Message.Content)
}

// HealthPing implements health.HealthPinger by listing models.
func (p *Provider) HealthPing(ctx context.Context) error {
	if p.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai list models: %w", err)
	}
	return nil
}
