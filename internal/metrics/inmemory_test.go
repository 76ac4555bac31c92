package metrics

import (
	"testing"
	"time"
)

func TestInMemoryVisitPipelineCounters(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	m.ObserveVisitBatchSize(200)
	m.ObserveVisitBatchSize(300)
	m.ObserveVisitBatchDuration(40 * time.Millisecond)
	m.ObserveVisitBatchDuration(60 * time.Millisecond)
	m.ObserveVisitIngestLag(2 * time.Second)
	m.ObserveVisitIngestLag(3 * time.Second)
	m.SetVisitQueueDepth(17)

	snap := m.Snapshot()

	if snap.VisitBatchCount != 2 {
		t.Errorf("VisitBatchCount = %d, want 2", snap.VisitBatchCount)
	}
	if snap.VisitBatchTotalSize != 500 {
		t.Errorf("VisitBatchTotalSize = %d, want 500", snap.VisitBatchTotalSize)
	}
	if got := time.Duration(snap.VisitBatchDurationNs); got != 100*time.Millisecond {
		t.Errorf("VisitBatchDurationNs = %v, want 100ms", got)
	}
	if snap.VisitIngestLagCount != 2 {
		t.Errorf("VisitIngestLagCount = %d, want 2", snap.VisitIngestLagCount)
	}
	if got := time.Duration(snap.VisitIngestLagTotalNs); got != 5*time.Second {
		t.Errorf("VisitIngestLagTotalNs = %v, want 5s", got)
	}
	if snap.VisitQueueDepth != 17 {
		t.Errorf("VisitQueueDepth = %d, want 17", snap.VisitQueueDepth)
	}
}

func TestInMemoryLabeledCounters(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	m.IncVisitEventPublished("published")
	m.IncVisitEventPublished("published")
	m.IncVisitEventPublished("dropped")
	m.IncContentCreated("project")

	snap := m.Snapshot()

	if snap.VisitsPublished["published"] != 2 || snap.VisitsPublished["dropped"] != 1 {
		t.Errorf("unexpected published counts: %v", snap.VisitsPublished)
	}
	if snap.ContentCreated["project"] != 1 {
		t.Errorf("unexpected created counts: %v", snap.ContentCreated)
	}

	// Snapshot maps are copies; mutating one must not leak back.
	snap.VisitsPublished["published"] = 99
	if m.Snapshot().VisitsPublished["published"] != 2 {
		t.Error("snapshot map aliases the live counter map")
	}
}
