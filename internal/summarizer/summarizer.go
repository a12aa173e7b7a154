// Package summarizer defines the summarization capability used when snippets
// are created, plus the shared prompt and instrumentation.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhuonas/ai-snippet-service/internal/health"
	"github.com/jhuonas/ai-snippet-service/internal/metrics"
)

// DefaultMaxWords bounds the requested summary length.
const DefaultMaxWords = 30

// ErrEmptySummary is returned when a provider answers with no usable text.
var ErrEmptySummary = errors.New("empty summary")

// Provider turns text into a short summary.
type Provider interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Prompt builds the instruction sent to language-model providers.
func Prompt(maxWords int, text string) string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return fmt.Sprintf("Summarize the following content in no more than %d words. Be clear and focused:\n%s", maxWords, text)
}

// Clean trims provider output and rejects blank answers.
func Clean(summary string) (string, error) {
	s := strings.TrimSpace(summary)
	if s == "" {
		return "", ErrEmptySummary
	}
	return s, nil
}

// Instrumented wraps a Provider with Prometheus metrics and debug logging.
// HealthPing is forwarded when the wrapped provider supports it.
type Instrumented struct {
	name string
	next Provider
	log  zerolog.Logger
}

func Instrument(name string, p Provider, log zerolog.Logger) *Instrumented {
	return &Instrumented{name: name, next: p, log: log}
}

func (i *Instrumented) Name() string { return i.name }

func (i *Instrumented) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := i.next.Summarize(ctx, text)
	d := time.Since(start)
	metrics.ObserveSummarize(i.name, err, d)
	if err != nil {
		i.log.Warn().Err(err).Str("provider", i.name).Dur("latency", d).Msg("summarize failed")
		return "", err
	}
	i.log.Debug().Str("provider", i.name).Dur("latency", d).Int("summary_len", len(out)).Msg("summarize ok")
	return out, nil
}

func (i *Instrumented) HealthPing(ctx context.Context) error {
	if p, ok := i.next.(health.HealthPinger); ok {
		return p.HealthPing(ctx)
	}
	return nil
}

// NewHealthChecker returns a checker for the provider. Providers without a
// HealthPing are always reported healthy after the first probe.
func NewHealthChecker(p Provider, log zerolog.Logger, probeTimeout time.Duration) *health.PingChecker {
	var pinger health.HealthPinger = health.PingerFunc(func(context.Context) error { return nil })
	if hp, ok := p.(health.HealthPinger); ok {
		pinger = hp
	}
	return health.NewPingChecker("summarizer", pinger, log, probeTimeout)
}
