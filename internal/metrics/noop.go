package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncContentCacheHit is a no-op.
func (n *NoopRecorder) IncContentCacheHit() {}

// IncContentCacheMiss is a no-op.
func (n *NoopRecorder) IncContentCacheMiss() {}

// IncContentCreated is a no-op.
func (n *NoopRecorder) IncContentCreated(entity string) {}

// IncContentUpdated is a no-op.
func (n *NoopRecorder) IncContentUpdated(entity string) {}

// IncContentDeleted is a no-op.
func (n *NoopRecorder) IncContentDeleted(entity string) {}

// ObserveReportDuration is a no-op.
func (n *NoopRecorder) ObserveReportDuration(duration time.Duration) {}

// IncVisitEventPublished is a no-op.
func (n *NoopRecorder) IncVisitEventPublished(status string) {}

// IncVisitEventProcessed is a no-op.
func (n *NoopRecorder) IncVisitEventProcessed(status string) {}

// ObserveVisitBatchSize is a no-op.
func (n *NoopRecorder) ObserveVisitBatchSize(size int) {}

// ObserveVisitBatchDuration is a no-op.
func (n *NoopRecorder) ObserveVisitBatchDuration(duration time.Duration) {}

// SetVisitQueueDepth is a no-op.
func (n *NoopRecorder) SetVisitQueueDepth(depth int64) {}

// ObserveVisitIngestLag is a no-op.
func (n *NoopRecorder) ObserveVisitIngestLag(lag time.Duration) {}
