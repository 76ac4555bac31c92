package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vitrine/vitrine/internal/model"
)

// VisitRepository provides database access for visit events.
type VisitRepository struct {
	repo *Repository
}

// NewVisitRepository creates a new VisitRepository.
func NewVisitRepository(repo *Repository) *VisitRepository {
	return &VisitRepository{repo: repo}
}

// BulkInsert inserts multiple visit events with idempotency via ON CONFLICT DO NOTHING.
func (r *VisitRepository) BulkInsert(ctx context.Context, events []*model.VisitEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Moderate batch sizes use a pgx batch of single-row inserts; the
	// worker caps batches well below the point where COPY would pay off.
	batch := &pgx.Batch{}

	query := `
		INSERT INTO analytics (
			id, event_id, ip_address, user_agent, referrer, page_path,
			visit_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.IPAddress,
			event.UserAgent,
			nullableString(event.Referrer),
			event.PagePath,
			event.VisitDate,
		)
	}

	results := r.repo.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(events); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert event %d: %w", i, err)
		}
	}

	return nil
}

// bucketFunction maps a report period to its store-side aggregation function.
func bucketFunction(period model.ReportPeriod) string {
	switch period {
	case model.PeriodWeekly:
		return "get_weekly_visits"
	case model.PeriodMonthly:
		return "get_monthly_visits"
	default:
		return "get_daily_visits"
	}
}

// BucketedVisits returns the chart buckets for the given period and window.
// Bucketing is delegated to SQL functions so daily, weekly and monthly
// share one call shape; rows come back already ordered by bucket.
func (r *VisitRepository) BucketedVisits(ctx context.Context, period model.ReportPeriod, start, end time.Time) ([]model.VisitBucket, error) {
	query := fmt.Sprintf(`SELECT bucket_key, visit_count FROM %s($1, $2)`, bucketFunction(period))

	rows, err := r.repo.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query %s buckets: %w", period, err)
	}
	defer rows.Close()

	buckets := make([]model.VisitBucket, 0)
	for rows.Next() {
		var b model.VisitBucket
		var key time.Time
		if err := rows.Scan(&key, &b.VisitCount); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		b.BucketKey = key.Format("2006-01-02")
		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

// TotalVisits returns the all-time visit count, regardless of window.
func (r *VisitRepository) TotalVisits(ctx context.Context) (int64, error) {
	var count int64
	err := r.repo.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analytics`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query total visits: %w", err)
	}
	return count, nil
}

// TodayVisits returns the visit count for the current UTC date.
func (r *VisitRepository) TodayVisits(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.repo.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM analytics WHERE visit_date = $1`, today,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query today visits: %w", err)
	}
	return count, nil
}

// UniqueVisitors counts distinct IP addresses within the window.
// IPs are compared as opaque strings; the "unknown" sentinel counts
// as a single visitor.
func (r *VisitRepository) UniqueVisitors(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.repo.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT ip_address) FROM analytics WHERE visit_date >= $1 AND visit_date <= $2`,
		start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query unique visitors: %w", err)
	}
	return count, nil
}

// TopPages returns the most visited paths within the window, count
// descending with path ascending as the tie-break.
func (r *VisitRepository) TopPages(ctx context.Context, start, end time.Time, limit int) ([]model.PageCount, error) {
	query := `
		SELECT page_path, COUNT(*) as visits
		FROM analytics
		WHERE visit_date >= $1 AND visit_date <= $2
		GROUP BY page_path
		ORDER BY visits DESC, page_path ASC
		LIMIT $3
	`

	rows, err := r.repo.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("query top pages: %w", err)
	}
	defer rows.Close()

	pages := make([]model.PageCount, 0)
	for rows.Next() {
		var p model.PageCount
		if err := rows.Scan(&p.Path, &p.Count); err != nil {
			return nil, fmt.Errorf("scan page count: %w", err)
		}
		pages = append(pages, p)
	}

	return pages, rows.Err()
}
