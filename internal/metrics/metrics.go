// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Content metrics
	IncContentCacheHit()
	IncContentCacheMiss()
	IncContentCreated(entity string)
	IncContentUpdated(entity string)
	IncContentDeleted(entity string)

	// Analytics report metrics
	ObserveReportDuration(duration time.Duration)

	// Visit pipeline metrics
	IncVisitEventPublished(status string) // status: "success" or "dropped"
	IncVisitEventProcessed(status string) // status: "success", "failed", "dead_lettered"
	ObserveVisitBatchSize(size int)
	ObserveVisitBatchDuration(duration time.Duration)
	SetVisitQueueDepth(depth int64)
	ObserveVisitIngestLag(lag time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
