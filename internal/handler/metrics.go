package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/vitrine/vitrine/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "vitrine_content_cache_hits_total %d\n", snap.ContentCacheHits)
	writeMetric(w, "vitrine_content_cache_misses_total %d\n", snap.ContentCacheMisses)

	writeLabeledMetric(w, "vitrine_content_created_total", "entity", snap.ContentCreated)
	writeLabeledMetric(w, "vitrine_content_updated_total", "entity", snap.ContentUpdated)
	writeLabeledMetric(w, "vitrine_content_deleted_total", "entity", snap.ContentDeleted)

	writeMetric(w, "vitrine_report_duration_seconds_count %d\n", snap.ReportDurationCount)
	writeMetric(w, "vitrine_report_duration_seconds_sum %.6f\n", float64(snap.ReportDurationTotalNs)/1e9)

	writeLabeledMetric(w, "vitrine_visit_events_published_total", "status", snap.VisitsPublished)
	writeLabeledMetric(w, "vitrine_visit_events_processed_total", "status", snap.VisitsProcessed)

	writeMetric(w, "vitrine_visit_batches_total %d\n", snap.VisitBatchCount)
	writeMetric(w, "vitrine_visit_batch_events_total %d\n", snap.VisitBatchTotalSize)
	writeMetric(w, "vitrine_visit_batch_duration_seconds_sum %.6f\n", float64(snap.VisitBatchDurationNs)/1e9)
	writeMetric(w, "vitrine_visit_ingest_lag_seconds_count %d\n", snap.VisitIngestLagCount)
	writeMetric(w, "vitrine_visit_ingest_lag_seconds_sum %.6f\n", float64(snap.VisitIngestLagTotalNs)/1e9)
	writeMetric(w, "vitrine_visit_queue_depth %d\n", snap.VisitQueueDepth)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func writeLabeledMetric(w http.ResponseWriter, name, label string, counts map[string]uint64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeMetric(w, "%s{%s=%q} %d\n", name, label, k, counts[k])
	}
}
