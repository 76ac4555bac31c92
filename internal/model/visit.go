// Package model defines domain entities for the application.
package model

import "time"

// VisitEvent represents a single tracked page view.
// Rows are append-only: a visit is never updated or deleted.
type VisitEvent struct {
	ID      string `json:"id"`       // ULID (time-sortable)
	EventID string `json:"event_id"` // Idempotency key (Redis stream ID)

	// Request metadata
	IPAddress string `json:"ip_address"`         // Client IP, or the literal "unknown"
	UserAgent string `json:"user_agent"`         // UA string, or "unknown" (truncated 500 chars)
	Referrer  string `json:"referrer,omitempty"` // Referer header, empty when absent
	PagePath  string `json:"page_path"`          // Visited path, defaults to "/"

	// Timestamps
	VisitDate time.Time `json:"visit_date"` // Calendar date of the visit (time zeroed, UTC)
	CreatedAt time.Time `json:"created_at"` // DB insertion time
}

// VisitBucket is one time bucket of the analytics chart: a day, a week
// keyed by its start date, or a month keyed by its first day.
type VisitBucket struct {
	BucketKey  string `json:"bucket_key"`
	VisitCount int64  `json:"visit_count"`
}

// PageCount is one entry of the top-pages ranking.
type PageCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// ReportPeriod is the bucket granularity of an analytics report.
type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

// ParseReportPeriod maps a raw query value onto a period,
// defaulting to daily for anything unrecognized.
func ParseReportPeriod(raw string) ReportPeriod {
	switch ReportPeriod(raw) {
	case PeriodWeekly:
		return PeriodWeekly
	case PeriodMonthly:
		return PeriodMonthly
	default:
		return PeriodDaily
	}
}

// DateRange is the resolved, inclusive reporting window.
type DateRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// AnalyticsReport is the derived analytics view returned to the dashboard.
// It is computed fresh per request and never persisted.
//
// ChartData, UniqueVisitors and TopPages are scoped to the requested
// window; TotalVisits and TodayVisits are global/current-day regardless
// of the window.
type AnalyticsReport struct {
	ChartData      []VisitBucket `json:"chartData"`
	TotalVisits    int64         `json:"totalVisits"`
	TodayVisits    int64         `json:"todayVisits"`
	UniqueVisitors int64         `json:"uniqueVisitors"`
	TopPages       []PageCount   `json:"topPages"`
	Period         ReportPeriod  `json:"period"`
	DateRange      DateRange     `json:"dateRange"`
}

// DashboardStats holds per-section content counts for the dashboard home.
type DashboardStats struct {
	Projects     int64 `json:"projects"`
	Education    int64 `json:"education"`
	Certificates int64 `json:"certificates"`
}
