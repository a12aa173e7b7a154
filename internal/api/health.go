package api

import (
	"net/http"
	"time"

	respond "github.com/jhuonas/ai-snippet-service/internal/api/respond"
)

// ServiceHealth reports cached dependency health. *health.ServiceHealthChecker satisfies it.
type ServiceHealth interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	svc ServiceHealth
}

// NewHealthHandler creates a new health handler. A nil svc always reports healthy.
func NewHealthHandler(svc ServiceHealth) *HealthHandler { return &HealthHandler{svc: svc} }

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	var components map[string]bool
	if h.svc != nil {
		components = h.svc.Components()
		if !h.svc.IsHealthy() {
			status = "unhealthy"
		}
	}
	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if len(components) > 0 {
		response["components"] = components
	}
	respond.WriteJSON(w, http.StatusOK, response)
}
