package handler

import (
	"log/slog"
	"net/http"

	"github.com/carvalueai/carvalueai/internal/apierr"
	"github.com/carvalueai/carvalueai/internal/handler/dto"
	"github.com/carvalueai/carvalueai/internal/service"
)

// StatsHandler serves aggregate usage counts.
type StatsHandler struct {
	svc    *service.StatsService
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		svc:    svc,
		logger: logger,
	}
}

// Stats handles GET /stats.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Collect(r.Context())
	if err != nil {
		h.logger.Error("stats_collect_failed", "error", err)
		apierr.WriteInternal(w, "")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsResponse{
		Status: "success",
		Stats:  stats,
	})
}
