// Package analytics provides visit event capture and processing.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vitrine/vitrine/internal/metrics"
)

const (
	// StreamKey is the Redis stream for visit events.
	StreamKey = "stream:visit_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:visit_events:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// VisitEventPayload is the compressed event format for Redis stream.
type VisitEventPayload struct {
	PagePath  string `json:"p"`            // page_path
	IPAddress string `json:"ip"`           // client IP or "unknown"
	UserAgent string `json:"ua,omitempty"` // user_agent (truncated)
	Referrer  string `json:"r,omitempty"`  // referrer (truncated)
	VisitedAt int64  `json:"t"`            // Unix milliseconds
}

// Publisher enqueues visit events to Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new visit event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "analytics.publisher"),
		metrics: recorder,
	}
}

// Publish adds a visit event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event VisitEventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",  // Auto-generate ID
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget): a broken
// pipeline must never slow down or fail the page being tracked.
func (p *Publisher) PublishAsync(event VisitEventPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish visit event",
				"page_path", event.PagePath,
				"error", err,
			)
			p.metrics.IncVisitEventPublished("dropped")
			return
		}

		p.logger.Debug("visit event published",
			"page_path", event.PagePath,
			"stream_id", streamID,
		)
		p.metrics.IncVisitEventPublished("success")
	}()
}

// NormalizePagePath trims and bounds a requested path, falling back
// to the site root for anything unusable.
func NormalizePagePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "/") {
		return "/"
	}
	if len(path) > maxMetaLength {
		return path[:maxMetaLength]
	}
	return path
}

// TruncateUserAgent truncates user agent to max 500 chars.
func TruncateUserAgent(ua string) string {
	if len(ua) > maxMetaLength {
		return ua[:maxMetaLength]
	}
	return ua
}

// TruncateReferrer truncates the referrer to max 500 chars.
func TruncateReferrer(ref string) string {
	if len(ref) > maxMetaLength {
		return ref[:maxMetaLength]
	}
	return ref
}

// ClientIP resolves the visitor address from proxy headers.
// X-Forwarded-For wins with its first entry, then X-Real-IP, then
// the "unknown" sentinel.
func ClientIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		if idx := strings.Index(forwardedFor, ","); idx >= 0 {
			forwardedFor = forwardedFor[:idx]
		}
		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(realIP); ip != "" {
		return ip
	}
	return "unknown"
}
