// Package anthropic summarizes text with the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhuonas/ai-snippet-service/internal/summarizer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-haiku-20240307"
	DefaultVersion   = "2023-06-01"
	DefaultMaxTokens = 100
)

var ErrMissingAPIKey = errors.New("anthropic: api key not configured")

type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Version   string
	MaxTokens int
	MaxWords  int
	// Timeout bounds each HTTP call; zero relies on the caller's context.
	Timeout time.Duration
}

type Provider struct {
	client *resty.Client
	cfg    Config
}

func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = summarizer.DefaultMaxWords
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", cfg.Version).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return &Provider{client: c, cfg: cfg}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize sends a single user message and returns the first content block's text.
func (p *Provider) Summarize(ctx context.Context, text string) (string, error) {
	if p.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	body := messagesRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: summarizer.Prompt(p.cfg.MaxWords, text)}},
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&body).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		var er errorResponse
		if json.Unmarshal(resp.Body(), &er) == nil && er.Error.Message != "" {
			return "", fmt.Errorf("anthropic status %d: %s: %s", resp.StatusCode(), er.Error.Type, er.Error.Message)
		}
		return "", fmt.Errorf("anthropic status %d", resp.StatusCode())
	}

	var out messagesResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("anthropic: %w", summarizer.ErrEmptySummary)
	}
	return summarizer.Clean(out.Content[0].Text)
}

// HealthPing implements health.HealthPinger by listing models.
func (p *Provider) HealthPing(ctx context.Context) error {
	if p.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	resp, err := p.client.R().SetContext(ctx).Get("/v1/models")
	if err != nil {
		return fmt.Errorf("anthropic request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("anthropic status %d", resp.StatusCode())
	}
	return nil
}
