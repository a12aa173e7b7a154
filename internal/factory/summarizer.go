package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhuonas/ai-snippet-service/internal/config"
	"github.com/jhuonas/ai-snippet-service/internal/summarizer"
	"github.com/jhuonas/ai-snippet-service/internal/summarizer/anthropic"
	"github.com/jhuonas/ai-snippet-service/internal/summarizer/local"
	"github.com/jhuonas/ai-snippet-service/internal/summarizer/openai"
)

// NewSummarizer builds the configured provider wrapped with instrumentation.
func NewSummarizer(cfg *config.Config, log zerolog.Logger) (*summarizer.Instrumented, error) {
	var p summarizer.Provider
	switch cfg.Summarizer {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Warn().Msg("ANTHROPIC_API_KEY not set; summarization will fail")
		}
		p = anthropic.New(anthropic.Config{
			APIKey:    cfg.AnthropicAPIKey,
			BaseURL:   cfg.AnthropicBaseURL,
			Model:     cfg.AnthropicModel,
			Version:   cfg.AnthropicAPIVersion,
			MaxTokens: cfg.SummaryMaxTokens,
			MaxWords:  cfg.SummaryMaxWords,
			Timeout:   cfg.SummarizerTimeout(),
		})
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY not set; summarization will fail")
		}
		p = openai.New(openai.Config{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			Model:     cfg.OpenAIModel,
			MaxTokens: cfg.SummaryMaxTokens,
			MaxWords:  cfg.SummaryMaxWords,
			Timeout:   cfg.SummarizerTimeout(),
		})
	case "local":
		p = local.New(cfg.SummaryMaxWords)
	default:
		return nil, fmt.Errorf("unknown SUMMARIZER: %s", cfg.Summarizer)
	}
	log.Debug().Str("summarizer", cfg.Summarizer).Msg("summarizer configured")
	return summarizer.Instrument(cfg.Summarizer, p, log), nil
}
