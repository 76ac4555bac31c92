package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vitrine/vitrine/internal/analytics"
	"github.com/vitrine/vitrine/internal/handler/dto"
)

// maxTrackBodyBytes bounds how much of a track request body gets read.
// Anything larger fails the decode, which still records a root visit.
const maxTrackBodyBytes = 1 << 20

// TrackHandler records page visits.
type TrackHandler struct {
	publisher *analytics.Publisher
	logger    *slog.Logger
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(publisher *analytics.Publisher, logger *slog.Logger) *TrackHandler {
	return &TrackHandler{
		publisher: publisher,
		logger:    logger,
	}
}

// Track handles POST /api/analytics/track.
//
// This endpoint is called from public page loads and must never break
// them: every path through here, including malformed bodies, publish
// failures and panics, answers 200 with the same acknowledgement.
func (h *TrackHandler) Track(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while tracking visit", "panic", rec)
			h.acknowledge(w)
		}
	}()

	var req dto.TrackRequest
	body := http.MaxBytesReader(w, r.Body, maxTrackBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		// Unparseable body still counts as a root visit.
		req.Path = "/"
	}

	event := analytics.VisitEventPayload{
		PagePath:  analytics.NormalizePagePath(req.Path),
		IPAddress: analytics.ClientIP(r.Header.Get("X-Forwarded-For"), r.Header.Get("X-Real-IP")),
		UserAgent: analytics.TruncateUserAgent(userAgentOrUnknown(r)),
		Referrer:  analytics.TruncateReferrer(r.Header.Get("Referer")),
		VisitedAt: time.Now().UnixMilli(),
	}

	h.publisher.PublishAsync(event)
	h.acknowledge(w)
}

func (h *TrackHandler) acknowledge(w http.ResponseWriter) {
	writeMessage(w, http.StatusOK, "Visit tracked")
}

func userAgentOrUnknown(r *http.Request) string {
	if ua := r.Header.Get("User-Agent"); ua != "" {
		return ua
	}
	return "unknown"
}
