package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jhuonas/ai-snippet-service/internal/model"
	"github.com/jhuonas/ai-snippet-service/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store for every call.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("CreateAndGet", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		before := time.Now().UTC().Add(-time.Second)
		in := &model.Snippet{Text: "  some text with spaces \n", Summary: "a summary"}
		created, err := s.Snippets().Create(ctx, in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if !model.IsValidSnippetID(created.ID) {
			t.Fatalf("Create: invalid id %q", created.ID)
		}
		if created.Text != in.Text || created.Summary != in.Summary {
			t.Fatalf("Create: fields not preserved: %+v", created)
		}
		if created.CreatedAt.Before(before) || created.CreatedAt.After(time.Now().UTC().Add(time.Second)) {
			t.Fatalf("Create: createdAt %v out of range", created.CreatedAt)
		}

		got, err := s.Snippets().GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ID != created.ID || got.Text != created.Text || got.Summary != created.Summary {
			t.Fatalf("GetByID: got=%+v want=%+v", got, created)
		}
		if !got.CreatedAt.Equal(created.CreatedAt) {
			t.Fatalf("GetByID: createdAt %v != %v", got.CreatedAt, created.CreatedAt)
		}
	})

	t.Run("CreateAssignsDistinctIDs", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()
		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			sn, err := s.Snippets().Create(ctx, &model.Snippet{Text: "same", Summary: "same"})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if seen[sn.ID] {
				t.Fatalf("duplicate id %s", sn.ID)
			}
			seen[sn.ID] = true
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := makeStore(t)
		_, err := s.Snippets().GetByID(context.Background(), model.NewSnippetID())
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("GetByID missing: want ErrNotFound, got %v", err)
		}
	})

	t.Run("ListAndCount", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		n, err := s.Snippets().Count(ctx)
		if err != nil || n != 0 {
			t.Fatalf("Count empty: n=%d err=%v", n, err)
		}
		empty, err := s.Snippets().List(ctx, model.ListSnippetsRequest{Take: 10})
		if err != nil || len(empty) != 0 {
			t.Fatalf("List empty: n=%d err=%v", len(empty), err)
		}

		var ids []string
		for i := 0; i < 5; i++ {
			sn, err := s.Snippets().Create(ctx, &model.Snippet{Text: fmt.Sprintf("text %d", i), Summary: "s"})
			if err != nil {
				t.Fatalf("Create %d: %v", i, err)
			}
			ids = append(ids, sn.ID)
		}

		n, err = s.Snippets().Count(ctx)
		if err != nil || n != 5 {
			t.Fatalf("Count: n=%d err=%v", n, err)
		}

		all, err := s.Snippets().List(ctx, model.ListSnippetsRequest{Take: 10})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 5 {
			t.Fatalf("List: want 5 got %d", len(all))
		}
		for i, sn := range all {
			if want := ids[len(ids)-1-i]; sn.ID != want {
				t.Fatalf("List order[%d]: want %s got %s", i, want, sn.ID)
			}
		}

		page, err := s.Snippets().List(ctx, model.ListSnippetsRequest{Take: 2, Skip: 1})
		if err != nil {
			t.Fatalf("List page: %v", err)
		}
		if len(page) != 2 || page[0].ID != ids[3] || page[1].ID != ids[2] {
			t.Fatalf("List page: unexpected %v", snippetIDs(page))
		}

		tail, err := s.Snippets().List(ctx, model.ListSnippetsRequest{Take: 10, Skip: 4})
		if err != nil || len(tail) != 1 || tail[0].ID != ids[0] {
			t.Fatalf("List tail: got %v err=%v", snippetIDs(tail), err)
		}

		beyond, err := s.Snippets().List(ctx, model.ListSnippetsRequest{Take: 10, Skip: 50})
		if err != nil || len(beyond) != 0 {
			t.Fatalf("List beyond: n=%d err=%v", len(beyond), err)
		}

		zero, err := s.Snippets().List(ctx, model.ListSnippetsRequest{Take: 0})
		if err != nil || len(zero) != 0 {
			t.Fatalf("List take=0: n=%d err=%v", len(zero), err)
		}
	})
}

func snippetIDs(in []*model.Snippet) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.ID)
	}
	return out
}
