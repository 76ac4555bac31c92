package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ContentCacheHits      uint64
	ContentCacheMisses    uint64
	ContentCreated        map[string]uint64
	ContentUpdated        map[string]uint64
	ContentDeleted        map[string]uint64
	ReportDurationCount   uint64
	ReportDurationTotalNs int64
	VisitsPublished       map[string]uint64
	VisitsProcessed       map[string]uint64
	VisitBatchCount       uint64
	VisitBatchTotalSize   uint64
	VisitBatchDurationNs  int64
	VisitIngestLagCount   uint64
	VisitIngestLagTotalNs int64
	VisitQueueDepth       int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	contentCacheHits      uint64
	contentCacheMisses    uint64
	reportDurationCount   uint64
	reportDurationTotalNs int64
	visitBatchCount       uint64
	visitBatchTotalSize   uint64
	visitBatchDurationNs  int64
	visitIngestLagCount   uint64
	visitIngestLagTotalNs int64
	visitQueueDepth       int64

	mu              sync.Mutex
	contentCreated  map[string]uint64
	contentUpdated  map[string]uint64
	contentDeleted  map[string]uint64
	visitsPublished map[string]uint64
	visitsProcessed map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		contentCreated:  make(map[string]uint64),
		contentUpdated:  make(map[string]uint64),
		contentDeleted:  make(map[string]uint64),
		visitsPublished: make(map[string]uint64),
		visitsProcessed: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		ContentCacheHits:      atomic.LoadUint64(&m.contentCacheHits),
		ContentCacheMisses:    atomic.LoadUint64(&m.contentCacheMisses),
		ContentCreated:        copyCounts(m.contentCreated),
		ContentUpdated:        copyCounts(m.contentUpdated),
		ContentDeleted:        copyCounts(m.contentDeleted),
		ReportDurationCount:   atomic.LoadUint64(&m.reportDurationCount),
		ReportDurationTotalNs: atomic.LoadInt64(&m.reportDurationTotalNs),
		VisitsPublished:       copyCounts(m.visitsPublished),
		VisitsProcessed:       copyCounts(m.visitsProcessed),
		VisitBatchCount:       atomic.LoadUint64(&m.visitBatchCount),
		VisitBatchTotalSize:   atomic.LoadUint64(&m.visitBatchTotalSize),
		VisitBatchDurationNs:  atomic.LoadInt64(&m.visitBatchDurationNs),
		VisitIngestLagCount:   atomic.LoadUint64(&m.visitIngestLagCount),
		VisitIngestLagTotalNs: atomic.LoadInt64(&m.visitIngestLagTotalNs),
		VisitQueueDepth:       atomic.LoadInt64(&m.visitQueueDepth),
	}
}

// IncContentCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncContentCacheHit() {
	atomic.AddUint64(&m.contentCacheHits, 1)
}

// IncContentCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncContentCacheMiss() {
	atomic.AddUint64(&m.contentCacheMisses, 1)
}

// IncContentCreated increments the per-entity created counter.
func (m *InMemoryRecorder) IncContentCreated(entity string) {
	m.incLabeled(m.contentCreated, entity)
}

// IncContentUpdated increments the per-entity updated counter.
func (m *InMemoryRecorder) IncContentUpdated(entity string) {
	m.incLabeled(m.contentUpdated, entity)
}

// IncContentDeleted increments the per-entity deleted counter.
func (m *InMemoryRecorder) IncContentDeleted(entity string) {
	m.incLabeled(m.contentDeleted, entity)
}

// ObserveReportDuration records report build duration.
func (m *InMemoryRecorder) ObserveReportDuration(duration time.Duration) {
	atomic.AddUint64(&m.reportDurationCount, 1)
	atomic.AddInt64(&m.reportDurationTotalNs, duration.Nanoseconds())
}

// IncVisitEventPublished increments the publish counter by status.
func (m *InMemoryRecorder) IncVisitEventPublished(status string) {
	m.incLabeled(m.visitsPublished, status)
}

// IncVisitEventProcessed increments the processed counter by status.
func (m *InMemoryRecorder) IncVisitEventProcessed(status string) {
	m.incLabeled(m.visitsProcessed, status)
}

// ObserveVisitBatchSize records a processed batch size.
func (m *InMemoryRecorder) ObserveVisitBatchSize(size int) {
	atomic.AddUint64(&m.visitBatchCount, 1)
	atomic.AddUint64(&m.visitBatchTotalSize, uint64(size))
}

// ObserveVisitBatchDuration accumulates batch processing time.
// The batch count lives on ObserveVisitBatchSize, which the worker
// calls once per batch alongside this.
func (m *InMemoryRecorder) ObserveVisitBatchDuration(duration time.Duration) {
	atomic.AddInt64(&m.visitBatchDurationNs, duration.Nanoseconds())
}

// SetVisitQueueDepth records the current queue depth.
func (m *InMemoryRecorder) SetVisitQueueDepth(depth int64) {
	atomic.StoreInt64(&m.visitQueueDepth, depth)
}

// ObserveVisitIngestLag records time from publish to insert per event.
func (m *InMemoryRecorder) ObserveVisitIngestLag(lag time.Duration) {
	atomic.AddUint64(&m.visitIngestLagCount, 1)
	atomic.AddInt64(&m.visitIngestLagTotalNs, lag.Nanoseconds())
}

func (m *InMemoryRecorder) incLabeled(counts map[string]uint64, label string) {
	m.mu.Lock()
	counts[label]++
	m.mu.Unlock()
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
