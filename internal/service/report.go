// Package service provides business logic for the application.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/vitrine/vitrine/internal/metrics"
	"github.com/vitrine/vitrine/internal/model"
)

const (
	// DefaultReportDays is the window length when none is requested.
	DefaultReportDays = 30

	// TopPagesLimit bounds the top-pages ranking.
	TopPagesLimit = 10
)

// VisitSource defines the visit queries the report needs.
type VisitSource interface {
	BucketedVisits(ctx context.Context, period model.ReportPeriod, start, end time.Time) ([]model.VisitBucket, error)
	TotalVisits(ctx context.Context) (int64, error)
	TodayVisits(ctx context.Context, today time.Time) (int64, error)
	UniqueVisitors(ctx context.Context, start, end time.Time) (int64, error)
	TopPages(ctx context.Context, start, end time.Time, limit int) ([]model.PageCount, error)
}

// ReportService assembles analytics reports for the dashboard.
type ReportService struct {
	visits  VisitSource
	logger  *slog.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(visits VisitSource, logger *slog.Logger, recorder metrics.Recorder) *ReportService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ReportService{
		visits:  visits,
		logger:  logger.With("component", "service.report"),
		metrics: recorder,
		now:     time.Now,
	}
}

// ParseDays maps a raw query value onto a window length,
// defaulting for anything absent or unparseable.
func ParseDays(raw string) int {
	if raw == "" {
		return DefaultReportDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return DefaultReportDays
	}
	return days
}

// BuildReport computes the full analytics view for a period and window.
//
// The chart buckets are the mandatory core: if that query fails, the
// whole report fails. The four supplementary figures degrade to their
// zero values individually so a partial store outage still yields a
// usable report. All five queries run concurrently.
func (s *ReportService) BuildReport(ctx context.Context, period model.ReportPeriod, days int) (*model.AnalyticsReport, error) {
	started := s.now()
	end := started.UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	report := &model.AnalyticsReport{
		ChartData: []model.VisitBucket{},
		TopPages:  []model.PageCount{},
		Period:    period,
		DateRange: model.DateRange{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
	}

	var wg sync.WaitGroup
	var bucketErr error

	wg.Add(5)

	go func() {
		defer wg.Done()
		buckets, err := s.visits.BucketedVisits(ctx, period, start, end)
		if err != nil {
			bucketErr = fmt.Errorf("bucketed visits: %w", err)
			return
		}
		if buckets != nil {
			report.ChartData = buckets
		}
	}()

	go func() {
		defer wg.Done()
		total, err := s.visits.TotalVisits(ctx)
		if err != nil {
			s.logger.Warn("total visits query failed", "error", err)
			return
		}
		report.TotalVisits = total
	}()

	go func() {
		defer wg.Done()
		today, err := s.visits.TodayVisits(ctx, end)
		if err != nil {
			s.logger.Warn("today visits query failed", "error", err)
			return
		}
		report.TodayVisits = today
	}()

	go func() {
		defer wg.Done()
		unique, err := s.visits.UniqueVisitors(ctx, start, end)
		if err != nil {
			s.logger.Warn("unique visitors query failed", "error", err)
			return
		}
		report.UniqueVisitors = unique
	}()

	go func() {
		defer wg.Done()
		pages, err := s.visits.TopPages(ctx, start, end, TopPagesLimit)
		if err != nil {
			s.logger.Warn("top pages query failed", "error", err)
			return
		}
		if pages != nil {
			report.TopPages = pages
		}
	}()

	wg.Wait()

	if bucketErr != nil {
		return nil, bucketErr
	}

	s.metrics.ObserveReportDuration(time.Since(started))
	return report, nil
}
