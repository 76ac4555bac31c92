package handler

import (
	"log/slog"
	"net/http"

	"github.com/vitrine/vitrine/internal/model"
	"github.com/vitrine/vitrine/internal/service"
)

// AnalyticsHandler serves the dashboard analytics report.
type AnalyticsHandler struct {
	reports *service.ReportService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(reports *service.ReportService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		reports: reports,
		logger:  logger,
	}
}

// Report handles GET /api/analytics.
//
// Unrecognized period or days values silently fall back to their
// defaults; only a failing chart query fails the request.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period := model.ParseReportPeriod(query.Get("period"))
	days := service.ParseDays(query.Get("days"))

	report, err := h.reports.BuildReport(r.Context(), period, days)
	if err != nil {
		h.logger.Error("analytics report failed",
			"period", period,
			"days", days,
			"error", err,
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, report)
}
