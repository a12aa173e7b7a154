//
// 🔒 Invariant Contract Testing
// ⚠️  These checks ensure snippet service invariants are never violated
// 🛡️  Uses customer-facing APIs only (blackbox testing)
//

package invariants

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InvariantChecker tests system invariants using customer-facing APIs.
// It treats the service as an external system reachable at baseURL.
type InvariantChecker struct {
	baseURL string
	client  *http.Client
}

// NewInvariantChecker creates a new invariant checker
func NewInvariantChecker(baseURL string) *InvariantChecker {
	return &InvariantChecker{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// 🔒 INVARIANT: Snippets are immutable once created
func (ic *InvariantChecker) TestSnippetImmutabilityInvariant(t *testing.T) {
	created := ic.createSnippet(t, "Immutable text that must never change after creation.")

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		t.Run(method+"IsNotRouted", func(t *testing.T) {
			ic.makeRequest(t, method, "/snippets/"+created.ID,
				map[string]string{"text": "rewritten"}, http.StatusNotFound)
		})
	}

	t.Run("StoredSnippetUnchanged", func(t *testing.T) {
		got := ic.getSnippet(t, created.ID)
		assert.Equal(t, created.Text, got.Text)
		assert.Equal(t, created.Summary, got.Summary)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	})
}

// 🔒 INVARIANT: A snippet read back equals the snippet returned on create
func (ic *InvariantChecker) TestCreateFetchRoundTripInvariant(t *testing.T) {
	text := "  Leading and trailing spaces are kept verbatim.\nSecond line.  "
	created := ic.createSnippet(t, text)

	require.NotEmpty(t, created.ID)
	assert.Equal(t, text, created.Text, "text must be stored verbatim")
	assert.NotEmpty(t, created.Summary)
	assert.False(t, created.CreatedAt.IsZero())

	got := ic.getSnippet(t, created.ID)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Text, got.Text)
	assert.Equal(t, created.Summary, got.Summary)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

// 🔒 INVARIANT: Rejected requests persist nothing
func (ic *InvariantChecker) TestRejectedCreatePersistsNothingInvariant(t *testing.T) {
	before := ic.listSnippets(t, 1, 0).Total

	ic.makeRequest(t, http.MethodPost, "/snippets", map[string]string{"text": "   "}, http.StatusBadRequest)
	ic.makeRequest(t, http.MethodPost, "/snippets", map[string]any{"text": 42}, http.StatusBadRequest)
	ic.makeRequest(t, http.MethodPost, "/snippets", map[string]any{}, http.StatusBadRequest)

	after := ic.listSnippets(t, 1, 0).Total
	assert.Equal(t, before, after, "failed creates must not change the total")
}

// 🔒 INVARIANT: Listing is newest first, pages are disjoint and total is stable
func (ic *InvariantChecker) TestListOrderingInvariant(t *testing.T) {
	for i := 0; i < 4; i++ {
		ic.createSnippet(t, fmt.Sprintf("Ordering snippet number %d.", i))
	}

	first := ic.listSnippets(t, 2, 0)
	second := ic.listSnippets(t, 2, 2)

	t.Run("TotalStableAcrossPages", func(t *testing.T) {
		assert.Equal(t, first.Total, second.Total)
		assert.GreaterOrEqual(t, first.Total, 4)
	})

	t.Run("PagesAreDisjoint", func(t *testing.T) {
		require.Len(t, first.Data, 2)
		require.Len(t, second.Data, 2)
		seen := map[string]bool{}
		for _, s := range append(first.Data, second.Data...) {
			assert.False(t, seen[s.ID], "snippet %s appears on two pages", s.ID)
			seen[s.ID] = true
		}
	})

	t.Run("NewestFirst", func(t *testing.T) {
		all := append(first.Data, second.Data...)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt),
				"snippet %d is newer than snippet %d", i, i-1)
		}
	})

	t.Run("PastTheEndIsEmpty", func(t *testing.T) {
		page := ic.listSnippets(t, 10, first.Total)
		assert.NotNil(t, page.Data)
		assert.Empty(t, page.Data)
		assert.Equal(t, first.Total, page.Total)
	})
}

func (ic *InvariantChecker) createSnippet(t *testing.T, text string) *SnippetResponse {
	t.Helper()
	resp := ic.makeRequest(t, http.MethodPost, "/snippets", map[string]string{"text": text}, http.StatusCreated)

	var s SnippetResponse
	require.NoError(t, json.Unmarshal(resp, &s))
	return &s
}

func (ic *InvariantChecker) getSnippet(t *testing.T, id string) *SnippetResponse {
	t.Helper()
	resp := ic.makeRequest(t, http.MethodGet, "/snippets/"+id, nil, http.StatusOK)

	var s SnippetResponse
	require.NoError(t, json.Unmarshal(resp, &s))
	return &s
}

func (ic *InvariantChecker) listSnippets(t *testing.T, take, skip int) *PageResponse {
	t.Helper()
	resp := ic.makeRequest(t, http.MethodGet,
		fmt.Sprintf("/snippets?take=%d&skip=%d", take, skip), nil, http.StatusOK)

	var p PageResponse
	require.NoError(t, json.Unmarshal(resp, &p))
	return &p
}

func (ic *InvariantChecker) makeRequest(t *testing.T, method, path string, body interface{}, expectedStatus int) []byte {
	t.Helper()
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, ic.baseURL+path, bytes.NewBuffer(reqBody))
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ic.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, expectedStatus, resp.StatusCode,
		"unexpected status for %s %s: %s", method, path, string(respBody))

	return respBody
}

// Response models for API interactions

type SnippetResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

type PageResponse struct {
	Data  []SnippetResponse `json:"data"`
	Total int               `json:"total"`
	Take  int               `json:"take"`
	Skip  int               `json:"skip"`
}
