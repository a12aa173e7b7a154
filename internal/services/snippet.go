package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhuonas/ai-snippet-service/internal/model"
	"github.com/jhuonas/ai-snippet-service/internal/store"
	"github.com/jhuonas/ai-snippet-service/internal/summarizer"
)

// Page defaults applied when the caller omits a parameter.
const (
	DefaultTake = 10
	DefaultSkip = 0
)

type SnippetService struct {
	summarizer summarizer.Provider
	snippets   store.Snippets
}

func NewSnippetService(p summarizer.Provider, s store.Snippets) *SnippetService {
	return &SnippetService{summarizer: p, snippets: s}
}

// Create summarizes text and persists it. Nothing is written when summarization fails.
func (s *SnippetService) Create(ctx context.Context, text string) (*model.Snippet, error) {
	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, &model.SummarizationError{Cause: err}
	}
	return s.snippets.Create(ctx, &model.Snippet{Text: text, Summary: summary})
}

// FindAll lists one page of snippets, newest first, together with the total count.
// Only an absent Take or Skip is defaulted; explicit values pass through.
func (s *SnippetService) FindAll(ctx context.Context, req model.PageRequest) (*model.SnippetPage, error) {
	take, skip := DefaultTake, DefaultSkip
	if req.Take != nil {
		take = *req.Take
	}
	if req.Skip != nil {
		skip = *req.Skip
	}

	var (
		data  []*model.Snippet
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = s.snippets.List(gctx, model.ListSnippetsRequest{Take: take, Skip: skip})
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.snippets.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	if data == nil {
		data = []*model.Snippet{}
	}
	return &model.SnippetPage{Data: data, Total: total, Take: take, Skip: skip}, nil
}

// FindByID returns model.ErrInvalidID for malformed ids without querying the store.
// Hex case is ignored.
func (s *SnippetService) FindByID(ctx context.Context, id string) (*model.Snippet, error) {
	canonical, ok := model.CanonicalSnippetID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidID, id)
	}
	return s.snippets.GetByID(ctx, canonical)
}
