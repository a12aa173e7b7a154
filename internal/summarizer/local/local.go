// Package local provides a deterministic extractive summarizer that needs no
// network access. It backs the local build target and tests.
package local

import (
	"context"
	"strings"

	"github.com/jhuonas/ai-snippet-service/internal/summarizer"
)

type Provider struct{ maxWords int }

func New(maxWords int) *Provider {
	if maxWords <= 0 {
		maxWords = summarizer.DefaultMaxWords
	}
	return &Provider{maxWords: maxWords}
}

// Summarize returns the first non-blank paragraph, cut to maxWords words.
func (p *Provider) Summarize(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	words := strings.Fields(firstParagraph(text))
	if len(words) > p.maxWords {
		return strings.Join(words[:p.maxWords], " ") + "...", nil
	}
	return summarizer.Clean(strings.Join(words, " "))
}

// firstParagraph returns the first run of non-blank lines. Paragraphs are
// separated by blank lines.
func firstParagraph(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
