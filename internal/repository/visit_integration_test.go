//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/vitrine/vitrine/internal/model"
	"github.com/vitrine/vitrine/internal/testutil"
)

// ============================================================================
// Visit Repository Integration Tests
// ============================================================================

func TestIntegrationVisitRepository_BulkInsert(t *testing.T) {
	ctx, repo := newAnalyticsTestEnv(t)
	visits := NewVisitRepository(repo)

	events := []*model.VisitEvent{
		testutil.NewTestVisit(t, "/"),
		testutil.NewTestVisit(t, "/projects"),
	}
	events[1].EventID = events[0].EventID + "x"

	if err := visits.BulkInsert(ctx, events); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	total, err := visits.TotalVisits(ctx)
	if err != nil {
		t.Fatalf("TotalVisits failed: %v", err)
	}
	if total != 2 {
		t.Errorf("TotalVisits = %d, want 2", total)
	}
}

func TestIntegrationVisitRepository_BulkInsert_Idempotent(t *testing.T) {
	ctx, repo := newAnalyticsTestEnv(t)
	visits := NewVisitRepository(repo)

	event := testutil.NewTestVisit(t, "/about")
	batch := []*model.VisitEvent{event}

	if err := visits.BulkInsert(ctx, batch); err != nil {
		t.Fatalf("BulkInsert (first) failed: %v", err)
	}

	// Replaying the same event_id must not create a second row.
	replay := *event
	replay.ID = replay.ID + "2"
	if err := visits.BulkInsert(ctx, []*model.VisitEvent{&replay}); err != nil {
		t.Fatalf("BulkInsert (replay) failed: %v", err)
	}

	total, err := visits.TotalVisits(ctx)
	if err != nil {
		t.Fatalf("TotalVisits failed: %v", err)
	}
	if total != 1 {
		t.Errorf("TotalVisits after replay = %d, want 1", total)
	}
}

func TestIntegrationVisitRepository_BucketedVisits_Daily(t *testing.T) {
	ctx, repo := newAnalyticsTestEnv(t)
	visits := NewVisitRepository(repo)

	day1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	events := []*model.VisitEvent{
		testutil.NewTestVisitOn(t, "/", "10.0.0.1", day1),
		testutil.NewTestVisitOn(t, "/a", "10.0.0.2", day1),
		testutil.NewTestVisitOn(t, "/b", "10.0.0.1", day2),
	}
	if err := visits.BulkInsert(ctx, events); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	buckets, err := visits.BucketedVisits(ctx, model.PeriodDaily, day1, day2)
	if err != nil {
		t.Fatalf("BucketedVisits failed: %v", err)
	}

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].BucketKey != "2026-08-01" || buckets[0].VisitCount != 2 {
		t.Errorf("bucket[0] = %+v, want 2026-08-01 with 2 visits", buckets[0])
	}
	if buckets[1].BucketKey != "2026-08-02" || buckets[1].VisitCount != 1 {
		t.Errorf("bucket[1] = %+v, want 2026-08-02 with 1 visit", buckets[1])
	}
}

func TestIntegrationVisitRepository_BucketedVisits_Monthly(t *testing.T) {
	ctx, repo := newAnalyticsTestEnv(t)
	visits := NewVisitRepository(repo)

	jul := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	aug := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	events := []*model.VisitEvent{
		testutil.NewTestVisitOn(t, "/", "10.0.0.1", jul),
		testutil.NewTestVisitOn(t, "/a", "10.0.0.2", aug),
		testutil.NewTestVisitOn(t, "/b", "10.0.0.3", aug),
	}
	if err := visits.BulkInsert(ctx, events); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	buckets, err := visits.BucketedVisits(ctx, model.PeriodMonthly, jul.AddDate(0, 0, -14), aug)
	if err != nil {
		t.Fatalf("BucketedVisits failed: %v", err)
	}

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].BucketKey != "2026-07-01" || buckets[0].VisitCount != 1 {
		t.Errorf("bucket[0] = %+v, want 2026-07-01 with 1 visit", buckets[0])
	}
	if buckets[1].BucketKey != "2026-08-01" || buckets[1].VisitCount != 2 {
		t.Errorf("bucket[1] = %+v, want 2026-08-01 with 2 visits", buckets[1])
	}
}

func TestIntegrationVisitRepository_UniqueVisitors(t *testing.T) {
	ctx, repo := newAnalyticsTestEnv(t)
	visits := NewVisitRepository(repo)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	events := []*model.VisitEvent{
		testutil.NewTestVisitOn(t, "/", "10.0.0.1", day),
		testutil.NewTestVisitOn(t, "/a", "10.0.0.1", day),
		testutil.NewTestVisitOn(t, "/b", "unknown", day),
		testutil.NewTestVisitOn(t, "/c", "unknown", day),
	}
	if err := visits.BulkInsert(ctx, events); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	// "unknown" is compared as an opaque string: one visitor.
	unique, err := visits.UniqueVisitors(ctx, day, day)
	if err != nil {
		t.Fatalf("UniqueVisitors failed: %v", err)
	}
	if unique != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", unique)
	}
}

func TestIntegrationVisitRepository_TopPages_TieBreak(t *testing.T) {
	ctx, repo := newAnalyticsTestEnv(t)
	visits := NewVisitRepository(repo)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	events := []*model.VisitEvent{
		testutil.NewTestVisitOn(t, "/zeta", "10.0.0.1", day),
		testutil.NewTestVisitOn(t, "/alpha", "10.0.0.2", day),
		testutil.NewTestVisitOn(t, "/popular", "10.0.0.3", day),
		testutil.NewTestVisitOn(t, "/popular", "10.0.0.4", day),
	}
	if err := visits.BulkInsert(ctx, events); err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}

	pages, err := visits.TopPages(ctx, day, day, 10)
	if err != nil {
		t.Fatalf("TopPages failed: %v", err)
	}

	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	if pages[0].Path != "/popular" || pages[0].Count != 2 {
		t.Errorf("pages[0] = %+v, want /popular with 2", pages[0])
	}
	// Equal counts order by path ascending.
	if pages[1].Path != "/alpha" || pages[2].Path != "/zeta" {
		t.Errorf("tie-break order = %q, %q; want /alpha, /zeta", pages[1].Path, pages[2].Path)
	}
}

func TestIntegrationVisitRepository_EmptyStore(t *testing.T) {
	ctx, repo := newAnalyticsTestEnv(t)
	visits := NewVisitRepository(repo)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	total, err := visits.TotalVisits(ctx)
	if err != nil {
		t.Fatalf("TotalVisits failed: %v", err)
	}
	if total != 0 {
		t.Errorf("TotalVisits = %d, want 0", total)
	}

	buckets, err := visits.BucketedVisits(ctx, model.PeriodDaily, day.AddDate(0, 0, -30), day)
	if err != nil {
		t.Fatalf("BucketedVisits failed: %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("got %d buckets, want 0", len(buckets))
	}

	pages, err := visits.TopPages(ctx, day.AddDate(0, 0, -30), day, 10)
	if err != nil {
		t.Fatalf("TopPages failed: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("got %d pages, want 0", len(pages))
	}
}

func newAnalyticsTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetAnalyticsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset analytics schema: %v", err)
	}

	return ctx, repo
}
