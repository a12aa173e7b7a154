package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhuonas/ai-snippet-service/internal/model"
)

type countOnlyStore struct{ err error }

func (s *countOnlyStore) Snippets() Snippets { return s }
func (s *countOnlyStore) Close() error       { return nil }

func (s *countOnlyStore) Create(context.Context, *model.Snippet) (*model.Snippet, error) {
	return nil, nil
}
func (s *countOnlyStore) GetByID(context.Context, string) (*model.Snippet, error) { return nil, nil }
func (s *countOnlyStore) List(context.Context, model.ListSnippetsRequest) ([]*model.Snippet, error) {
	return nil, nil
}
func (s *countOnlyStore) Count(context.Context) (int, error) { return 0, s.err }

type pingingStore struct {
	countOnlyStore
	pinged bool
}

func (s *pingingStore) HealthPing(context.Context) error { s.pinged = true; return nil }

func TestStoreHealthChecker_FallsBackToCount(t *testing.T) {
	s := &countOnlyStore{}
	hc := NewStoreHealthChecker(s, zerolog.Nop(), 0)
	assert.Equal(t, "store", hc.Name())
	assert.True(t, hc.Probe(context.Background()))

	s.err = errors.New("db down")
	assert.False(t, hc.Probe(context.Background()))
	assert.False(t, hc.IsHealthy())
}

func TestStoreHealthChecker_PrefersHealthPing(t *testing.T) {
	s := &pingingStore{countOnlyStore: countOnlyStore{err: errors.New("count must not be used")}}
	hc := NewStoreHealthChecker(s, zerolog.Nop(), 0)
	assert.True(t, hc.Probe(context.Background()))
	assert.True(t, s.pinged)
}
