package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/vitrine/vitrine/internal/model"
)

type fakeVisitSource struct {
	buckets    []model.VisitBucket
	bucketsErr error
	total      int64
	totalErr   error
	today      int64
	todayErr   error
	unique     int64
	uniqueErr  error
	pages      []model.PageCount
	pagesErr   error

	gotPeriod model.ReportPeriod
	gotStart  time.Time
	gotEnd    time.Time
	gotLimit  int
}

func (f *fakeVisitSource) BucketedVisits(ctx context.Context, period model.ReportPeriod, start, end time.Time) ([]model.VisitBucket, error) {
	f.gotPeriod = period
	f.gotStart = start
	f.gotEnd = end
	return f.buckets, f.bucketsErr
}

func (f *fakeVisitSource) TotalVisits(ctx context.Context) (int64, error) {
	return f.total, f.totalErr
}

func (f *fakeVisitSource) TodayVisits(ctx context.Context, today time.Time) (int64, error) {
	return f.today, f.todayErr
}

func (f *fakeVisitSource) UniqueVisitors(ctx context.Context, start, end time.Time) (int64, error) {
	return f.unique, f.uniqueErr
}

func (f *fakeVisitSource) TopPages(ctx context.Context, start, end time.Time, limit int) ([]model.PageCount, error) {
	f.gotLimit = limit
	return f.pages, f.pagesErr
}

func newTestReportService(visits VisitSource, now time.Time) *ReportService {
	svc := NewReportService(visits, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 30},
		{"7", 7},
		{"365", 365},
		{"0", 30},
		{"-5", 30},
		{"abc", 30},
		{"7.5", 30},
	}

	for _, tt := range tests {
		if got := ParseDays(tt.input); got != tt.want {
			t.Errorf("ParseDays(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestBuildReport_DateRange(t *testing.T) {
	visits := &fakeVisitSource{}
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	svc := newTestReportService(visits, now)

	report, err := svc.BuildReport(context.Background(), model.PeriodDaily, 30)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if report.DateRange.End != "2026-08-30" {
		t.Errorf("DateRange.End = %q, want 2026-08-30", report.DateRange.End)
	}
	if report.DateRange.Start != "2026-07-31" {
		t.Errorf("DateRange.Start = %q, want 2026-07-31", report.DateRange.Start)
	}
	if visits.gotPeriod != model.PeriodDaily {
		t.Errorf("period passed = %q, want daily", visits.gotPeriod)
	}
	if visits.gotLimit != TopPagesLimit {
		t.Errorf("top pages limit = %d, want %d", visits.gotLimit, TopPagesLimit)
	}
}

func TestBuildReport_AllFigures(t *testing.T) {
	visits := &fakeVisitSource{
		buckets: []model.VisitBucket{
			{BucketKey: "2026-08-29", VisitCount: 3},
			{BucketKey: "2026-08-30", VisitCount: 5},
		},
		total:  120,
		today:  5,
		unique: 7,
		pages: []model.PageCount{
			{Path: "/", Count: 6},
			{Path: "/projects", Count: 2},
		},
	}
	svc := newTestReportService(visits, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))

	report, err := svc.BuildReport(context.Background(), model.PeriodWeekly, 7)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if len(report.ChartData) != 2 {
		t.Errorf("ChartData length = %d, want 2", len(report.ChartData))
	}
	if report.TotalVisits != 120 || report.TodayVisits != 5 || report.UniqueVisitors != 7 {
		t.Errorf("figures = %d/%d/%d, want 120/5/7",
			report.TotalVisits, report.TodayVisits, report.UniqueVisitors)
	}
	if len(report.TopPages) != 2 || report.TopPages[0].Path != "/" {
		t.Errorf("TopPages = %+v", report.TopPages)
	}
	if report.Period != model.PeriodWeekly {
		t.Errorf("Period = %q, want weekly", report.Period)
	}
}

func TestBuildReport_BucketFailureIsFatal(t *testing.T) {
	storeErr := errors.New("relation does not exist")
	visits := &fakeVisitSource{
		bucketsErr: storeErr,
		total:      50,
	}
	svc := newTestReportService(visits, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))

	_, err := svc.BuildReport(context.Background(), model.PeriodDaily, 30)
	if err == nil {
		t.Fatal("expected error when chart query fails")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("error should wrap the store error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "relation does not exist") {
		t.Errorf("store message should survive, got: %v", err)
	}
}

func TestBuildReport_SupplementaryFailuresSoften(t *testing.T) {
	visits := &fakeVisitSource{
		buckets:   []model.VisitBucket{{BucketKey: "2026-08-30", VisitCount: 1}},
		totalErr:  errors.New("timeout"),
		todayErr:  errors.New("timeout"),
		uniqueErr: errors.New("timeout"),
		pagesErr:  errors.New("timeout"),
	}
	svc := newTestReportService(visits, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))

	report, err := svc.BuildReport(context.Background(), model.PeriodDaily, 30)
	if err != nil {
		t.Fatalf("supplementary failures must not fail the report: %v", err)
	}

	if report.TotalVisits != 0 || report.TodayVisits != 0 || report.UniqueVisitors != 0 {
		t.Errorf("failed figures should be zero, got %d/%d/%d",
			report.TotalVisits, report.TodayVisits, report.UniqueVisitors)
	}
	if report.TopPages == nil || len(report.TopPages) != 0 {
		t.Errorf("TopPages should be an empty slice, got %+v", report.TopPages)
	}
	if len(report.ChartData) != 1 {
		t.Errorf("ChartData should survive, got %+v", report.ChartData)
	}
}

func TestBuildReport_EmptyStore(t *testing.T) {
	visits := &fakeVisitSource{}
	svc := newTestReportService(visits, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))

	report, err := svc.BuildReport(context.Background(), model.PeriodDaily, 30)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if report.ChartData == nil || len(report.ChartData) != 0 {
		t.Errorf("ChartData should be an empty slice, got %+v", report.ChartData)
	}
	if report.TopPages == nil || len(report.TopPages) != 0 {
		t.Errorf("TopPages should be an empty slice, got %+v", report.TopPages)
	}
	if report.TotalVisits != 0 {
		t.Errorf("TotalVisits = %d, want 0", report.TotalVisits)
	}
}

type fakeCounter struct {
	projects     int64
	projectsErr  error
	education    int64
	educationErr error
	certs        int64
	certsErr     error
}

func (f *fakeCounter) CountProjects(ctx context.Context) (int64, error) {
	return f.projects, f.projectsErr
}

func (f *fakeCounter) CountEducation(ctx context.Context) (int64, error) {
	return f.education, f.educationErr
}

func (f *fakeCounter) CountCertificates(ctx context.Context) (int64, error) {
	return f.certs, f.certsErr
}

func TestDashboardStats(t *testing.T) {
	counts := &fakeCounter{projects: 4, education: 2, certs: 6}
	svc := NewStatsService(counts, slog.New(slog.NewTextHandler(io.Discard, nil)))

	stats := svc.DashboardStats(context.Background())
	if stats.Projects != 4 || stats.Education != 2 || stats.Certificates != 6 {
		t.Errorf("stats = %+v, want 4/2/6", stats)
	}
}

func TestDashboardStats_SoftFail(t *testing.T) {
	counts := &fakeCounter{projects: 4, educationErr: errors.New("down"), certs: 6}
	svc := NewStatsService(counts, slog.New(slog.NewTextHandler(io.Discard, nil)))

	stats := svc.DashboardStats(context.Background())
	if stats.Projects != 4 || stats.Education != 0 || stats.Certificates != 6 {
		t.Errorf("stats = %+v, want 4/0/6", stats)
	}
}
