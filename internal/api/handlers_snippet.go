package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	respond "github.com/jhuonas/ai-snippet-service/internal/api/respond"
	"github.com/jhuonas/ai-snippet-service/internal/api/validate"
	"github.com/jhuonas/ai-snippet-service/internal/model"
	"github.com/jhuonas/ai-snippet-service/internal/services"
)

// maxBodyBytes caps request bodies well above the largest valid snippet.
const maxBodyBytes = 64 << 10

// SnippetHandler is a thin HTTP transport over SnippetService.
type SnippetHandler struct {
	svc *services.SnippetService
}

func NewSnippetHandler(svc *services.SnippetService) *SnippetHandler {
	return &SnippetHandler{svc: svc}
}

// CreateSnippet POST /snippets
func (h *SnippetHandler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respond.WriteBadRequest(w, "Invalid request body")
		return
	}
	in, err := validate.CreateSnippet(body)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	out, err := h.svc.Create(r.Context(), in.Text)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListSnippets GET /snippets?take=&skip=
func (h *SnippetHandler) ListSnippets(w http.ResponseWriter, r *http.Request) {
	page, err := validate.PaginationQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	out, err := h.svc.FindAll(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetSnippet GET /snippets/{id}
func (h *SnippetHandler) GetSnippet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	out, err := h.svc.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, id)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// writeError maps domain errors to HTTP responses. Upstream causes are logged, never returned.
func (h *SnippetHandler) writeError(w http.ResponseWriter, r *http.Request, err error, id string) {
	if ve, ok := model.AsValidationError(err); ok {
		respond.WriteValidationError(w, ve)
		return
	}
	switch {
	case errors.Is(err, model.ErrInvalidID):
		respond.WriteBadRequest(w, fmt.Sprintf("Invalid ID format: %s", id))
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, fmt.Sprintf("Snippet with ID %q not found.", id))
	case errors.Is(err, model.ErrSummarizationFailed):
		cause := err
		var se *model.SummarizationError
		if errors.As(err, &se) && se.Cause != nil {
			cause = se.Cause
		}
		hlog.FromRequest(r).Error().Stack().Err(cause).Msg("summarization failed")
		respond.WriteInternalError(w, model.ErrSummarizationFailed.Error())
	default:
		hlog.FromRequest(r).Error().Stack().Err(err).Msg("request failed")
		respond.WriteInternalError(w, "Internal server error")
	}
}
