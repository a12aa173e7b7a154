package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhuonas/ai-snippet-service/internal/summarizer"
)

func newProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
}

func TestSummarize(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Short summary"}}]}`))
	})

	out, err := p.Summarize(context.Background(), "This is an example text.")
	require.NoError(t, err)
	assert.Equal(t, "Short summary", out)
	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, summarizer.Prompt(30, "This is an example text."), got.Messages[0].Content)
}

func TestSummarize_Failures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"server error": {http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`},
		"no choices":   {http.StatusOK, `{"choices":[]}`},
		"blank":        {http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := p.Summarize(context.Background(), "text")
			require.Error(t, err)
		})
	}
}

func TestSummarize_MissingKey(t *testing.T) {
	_, err := New(Config{}).Summarize(context.Background(), "text")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestHealthPing(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"}]}`))
	})
	assert.NoError(t, p.HealthPing(context.Background()))
}
