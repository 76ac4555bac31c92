package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vitrine/vitrine/internal/model"
)

// ContentCounter defines the count queries the dashboard needs.
type ContentCounter interface {
	CountProjects(ctx context.Context) (int64, error)
	CountEducation(ctx context.Context) (int64, error)
	CountCertificates(ctx context.Context) (int64, error)
}

// StatsService assembles per-section content counts.
type StatsService struct {
	counts ContentCounter
	logger *slog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(counts ContentCounter, logger *slog.Logger) *StatsService {
	return &StatsService{
		counts: counts,
		logger: logger.With("component", "service.stats"),
	}
}

// DashboardStats runs the three count queries concurrently. A failed
// count degrades to zero rather than failing the whole response.
func (s *StatsService) DashboardStats(ctx context.Context) *model.DashboardStats {
	stats := &model.DashboardStats{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		n, err := s.counts.CountProjects(ctx)
		if err != nil {
			s.logger.Warn("project count failed", "error", err)
			return
		}
		stats.Projects = n
	}()

	go func() {
		defer wg.Done()
		n, err := s.counts.CountEducation(ctx)
		if err != nil {
			s.logger.Warn("education count failed", "error", err)
			return
		}
		stats.Education = n
	}()

	go func() {
		defer wg.Done()
		n, err := s.counts.CountCertificates(ctx)
		if err != nil {
			s.logger.Warn("certificate count failed", "error", err)
			return
		}
		stats.Certificates = n
	}()

	wg.Wait()
	return stats
}
