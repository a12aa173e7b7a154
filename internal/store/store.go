package store

import (
	"context"

	"github.com/jhuonas/ai-snippet-service/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Snippets() Snippets
	Close() error
}

// Snippets is the record store for snippets. Create assigns ID and CreatedAt;
// GetByID returns model.ErrNotFound when no row matches.
type Snippets interface {
	Create(ctx context.Context, s *model.Snippet) (*model.Snippet, error)
	GetByID(ctx context.Context, id string) (*model.Snippet, error)
	// List returns at most req.Take snippets after skipping req.Skip, newest first.
	List(ctx context.Context, req model.ListSnippetsRequest) ([]*model.Snippet, error)
	Count(ctx context.Context) (int, error)
}
