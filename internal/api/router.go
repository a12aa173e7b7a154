package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/jhuonas/ai-snippet-service/internal/api/recovery"
	respond "github.com/jhuonas/ai-snippet-service/internal/api/respond"
	"github.com/jhuonas/ai-snippet-service/internal/metrics"
	"github.com/jhuonas/ai-snippet-service/internal/services"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Snippets   *services.SnippetService
	Health     ServiceHealth
	Logger     zerolog.Logger
	CORSOrigin string
}

// NewRouter wires routes and returns the full middleware-wrapped handler.
func NewRouter(d Deps) http.Handler {
	root := mux.NewRouter()
	root.Use(metrics.Middleware)
	root.NotFoundHandler = http.HandlerFunc(cannotRoute)
	root.MethodNotAllowedHandler = http.HandlerFunc(cannotRoute)

	// Snippets
	snippets := NewSnippetHandler(d.Snippets)
	root.HandleFunc("/snippets", snippets.CreateSnippet).Methods(http.MethodPost)
	root.HandleFunc("/snippets", snippets.ListSnippets).Methods(http.MethodGet)
	root.HandleFunc("/snippets/{id}", snippets.GetSnippet).Methods(http.MethodGet)

	// Health
	healthHandler := NewHealthHandler(d.Health)
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods(http.MethodGet)

	// Docs and metrics
	root.HandleFunc(swaggerPath, DocsHandler()).Methods(http.MethodGet)
	root.Handle("/api-docs", http.RedirectHandler(swaggerPath, http.StatusFound)).Methods(http.MethodGet)
	root.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	var h http.Handler = root
	if d.CORSOrigin != "" {
		h = CORS(d.CORSOrigin)(h)
	}
	h = AccessLog(h)
	h = RequestID(h)
	h = recovery.Middleware(h)
	h = hlog.NewHandler(d.Logger)(h)
	return h
}

func cannotRoute(w http.ResponseWriter, r *http.Request) {
	respond.WriteNotFound(w, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
}
