package handler

import (
	"net/http"

	"github.com/vitrine/vitrine/internal/service"
)

// StatsHandler serves dashboard content counts.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Stats handles GET /api/dashboard/stats.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.stats.DashboardStats(r.Context()))
}
