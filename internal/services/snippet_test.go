package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhuonas/ai-snippet-service/internal/model"
)

// --- Fakes ---

type fakeSummarizer struct {
	mu    sync.Mutex
	calls []string
	out   string
	err   error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	return f.out, f.err
}

type fakeSnippets struct {
	mu       sync.Mutex
	rows     []*model.Snippet
	creates  []*model.Snippet
	lists    []model.ListSnippetsRequest
	gets     []string
	listErr  error
	countErr error
}

func (f *fakeSnippets) Create(_ context.Context, s *model.Snippet) (*model.Snippet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, s)
	out := *s
	out.ID = model.NewSnippetID()
	out.CreatedAt = time.Now().UTC()
	f.rows = append(f.rows, &out)
	return &out, nil
}

func (f *fakeSnippets) GetByID(_ context.Context, id string) (*model.Snippet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, id)
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeSnippets) List(_ context.Context, req model.ListSnippetsRequest) ([]*model.Snippet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, req)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func (f *fakeSnippets) Count(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows), f.countErr
}

func intPtr(v int) *int { return &v }

// --- Create ---

func TestCreate_SummarizesOnceAndStores(t *testing.T) {
	sum := &fakeSummarizer{out: "Short summary"}
	st := &fakeSnippets{}
	svc := NewSnippetService(sum, st)

	got, err := svc.Create(context.Background(), "This is an example text.")
	require.NoError(t, err)

	assert.Equal(t, []string{"This is an example text."}, sum.calls)
	require.Len(t, st.creates, 1)
	assert.Equal(t, "This is an example text.", st.creates[0].Text)
	assert.Equal(t, "Short summary", st.creates[0].Summary)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "This is an example text.", got.Text)
	assert.Equal(t, "Short summary", got.Summary)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreate_PassesRawText(t *testing.T) {
	sum := &fakeSummarizer{out: "s"}
	svc := NewSnippetService(sum, &fakeSnippets{})
	_, err := svc.Create(context.Background(), "  padded\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"  padded\n"}, sum.calls)
}

func TestCreate_SummarizerFailureWritesNothing(t *testing.T) {
	cause := errors.New("upstream 503")
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{err: cause}, st)

	_, err := svc.Create(context.Background(), "X")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSummarizationFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "AI summary failed", err.Error())
	assert.Empty(t, st.creates)
}

// --- FindAll ---

func TestFindAll_Defaults(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{}, st)

	page, err := svc.FindAll(context.Background(), model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Take)
	assert.Equal(t, 0, page.Skip)
	assert.Equal(t, []model.ListSnippetsRequest{{Take: 10, Skip: 0}}, st.lists)
}

func TestFindAll_ExplicitValues(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{}, st)

	page, err := svc.FindAll(context.Background(), model.PageRequest{Take: intPtr(5), Skip: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Take)
	assert.Equal(t, 2, page.Skip)
	assert.Equal(t, []model.ListSnippetsRequest{{Take: 5, Skip: 2}}, st.lists)
}

func TestFindAll_ExplicitZeroIsKept(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{}, st)

	page, err := svc.FindAll(context.Background(), model.PageRequest{Take: intPtr(0), Skip: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Take)
	assert.Equal(t, 0, page.Skip)
	assert.Equal(t, []model.ListSnippetsRequest{{Take: 0, Skip: 0}}, st.lists)
}

func TestFindAll_EmptyStore(t *testing.T) {
	svc := NewSnippetService(&fakeSummarizer{}, &fakeSnippets{})

	page, err := svc.FindAll(context.Background(), model.PageRequest{})
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Total)
}

func TestFindAll_TotalIgnoresPaging(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{out: "s"}, st)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), "x")
		require.NoError(t, err)
	}
	page, err := svc.FindAll(context.Background(), model.PageRequest{Take: intPtr(1), Skip: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}

func TestFindAll_StoreErrors(t *testing.T) {
	boom := errors.New("db down")

	_, err := NewSnippetService(&fakeSummarizer{}, &fakeSnippets{listErr: boom}).
		FindAll(context.Background(), model.PageRequest{})
	assert.ErrorIs(t, err, boom)

	_, err = NewSnippetService(&fakeSummarizer{}, &fakeSnippets{countErr: boom}).
		FindAll(context.Background(), model.PageRequest{})
	assert.ErrorIs(t, err, boom)
}

// --- FindByID ---

func TestFindByID_MalformedNeverReachesStore(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{}, st)

	for _, id := range []string{"", "123", "not-an-object-id", "zzzzzzzzzzzzzzzzzzzzzzzz", "507f1f77bcf86cd7994390110"} {
		_, err := svc.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, model.ErrInvalidID, "id %q", id)
	}
	assert.Empty(t, st.gets)
}

func TestFindByID_NotFound(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{}, st)

	_, err := svc.FindByID(context.Background(), "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, []string{"507f1f77bcf86cd799439011"}, st.gets)
}

func TestFindByID_Found(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{out: "Short summary"}, st)
	created, err := svc.Create(context.Background(), "This is an example text.")
	require.NoError(t, err)

	got, err := svc.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestFindByID_IgnoresHexCase(t *testing.T) {
	st := &fakeSnippets{}
	svc := NewSnippetService(&fakeSummarizer{out: "Short summary"}, st)
	created, err := svc.Create(context.Background(), "This is an example text.")
	require.NoError(t, err)

	got, err := svc.FindByID(context.Background(), strings.ToUpper(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, []string{created.ID}, st.gets)
}
