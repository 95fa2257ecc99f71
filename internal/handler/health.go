package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking dependency health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and dependency status.
type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for db or cache if they are not configured.
func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness plus dependency connectivity.
// Always 200: the process is up, and clients read the database field to
// decide whether writes will succeed. Readiness gating is the probe's job.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Database:  "disconnected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.db != nil && h.db.Ping(ctx) == nil {
		response.Database = "connected"
	}

	if h.cache != nil {
		if h.cache.Ping(ctx) == nil {
			response.Cache = "connected"
		} else {
			response.Cache = "disconnected"
		}
	}

	writeJSON(w, http.StatusOK, response)
}
