package repository

import (
	"testing"

	"github.com/vitrine/vitrine/internal/model"
)

func TestBucketFunction(t *testing.T) {
	tests := []struct {
		period model.ReportPeriod
		want   string
	}{
		{model.PeriodDaily, "get_daily_visits"},
		{model.PeriodWeekly, "get_weekly_visits"},
		{model.PeriodMonthly, "get_monthly_visits"},
		{model.ReportPeriod("bogus"), "get_daily_visits"},
	}

	for _, tt := range tests {
		if got := bucketFunction(tt.period); got != tt.want {
			t.Errorf("bucketFunction(%q) = %q, want %q", tt.period, got, tt.want)
		}
	}
}

func TestNullableString(t *testing.T) {
	if got := nullableString(""); got != nil {
		t.Errorf("nullableString(\"\") = %v, want nil", got)
	}
	if got := nullableString("x"); got != "x" {
		t.Errorf("nullableString(\"x\") = %v, want \"x\"", got)
	}
}

func TestNullableInt(t *testing.T) {
	if got := nullableInt(0); got != nil {
		t.Errorf("nullableInt(0) = %v, want nil", got)
	}
	if got := nullableInt(3); got != 3 {
		t.Errorf("nullableInt(3) = %v, want 3", got)
	}
}

func TestDeref(t *testing.T) {
	if got := deref(nil); got != "" {
		t.Errorf("deref(nil) = %q, want empty", got)
	}
	s := "hello"
	if got := deref(&s); got != "hello" {
		t.Errorf("deref(&s) = %q, want %q", got, s)
	}
}
