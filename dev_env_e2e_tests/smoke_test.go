//go:build e2e
// +build e2e

package e2e

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

type snippet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// Runs against a live snippet-service (SNIPPET_API, default http://localhost:3000).
// Creates a snippet, reads it back, and checks it heads the listing.
func TestDevEnv_CreateGetList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	base := env("SNIPPET_API", "http://localhost:3000")
	if err := ping(base + "/api/health"); err != nil {
		t.Skipf("service %s unreachable: %v", base, err)
	}
	waitForHealthy(t, base, 30*time.Second)

	text := fmt.Sprintf("End to end snippet created at %s. It exists to check the full stack.", time.Now().Format(time.RFC3339Nano))

	var created snippet
	mustJSON(t, postJSON(t, base+"/snippets", fmt.Sprintf(`{"text":%q}`, text)), http.StatusCreated, &created)
	if created.ID == "" || created.Summary == "" || created.CreatedAt.IsZero() {
		t.Fatalf("incomplete snippet: %+v", created)
	}
	if created.Text != text {
		t.Fatalf("text mismatch: %q", created.Text)
	}

	resp, err := http.Get(base + "/snippets/" + created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got snippet
	mustJSON(t, resp, http.StatusOK, &got)
	if got.ID != created.ID {
		t.Fatalf("get returned %s, want %s", got.ID, created.ID)
	}

	resp, err = http.Get(base + "/snippets?take=1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var page struct {
		Data  []snippet `json:"data"`
		Total int       `json:"total"`
		Take  int       `json:"take"`
	}
	mustJSON(t, resp, http.StatusOK, &page)
	if page.Take != 1 || page.Total < 1 || len(page.Data) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestDevEnv_Validation(t *testing.T) {
	base := env("SNIPPET_API", "http://localhost:3000")
	if err := ping(base + "/api/health"); err != nil {
		t.Skipf("service %s unreachable: %v", base, err)
	}

	mustJSON(t, postJSON(t, base+"/snippets", `{"text":"   "}`), http.StatusBadRequest, nil)

	resp, err := http.Get(base + "/snippets?take=0")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	mustJSON(t, resp, http.StatusBadRequest, nil)

	resp, err = http.Get(base + "/snippets/not-an-id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	mustJSON(t, resp, http.StatusBadRequest, nil)
}
