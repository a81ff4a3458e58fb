package report

import (
	"context"
	"time"
)

// Service is the single source of truth for attendance summaries: every
// report, export or dashboard consumes its output instead of recomputing.
type Service interface {
	Aggregate(ctx context.Context, employeeID string, start, end time.Time) (SummaryMetrics, error)
	AggregateMany(ctx context.Context, employeeIDs []string, start, end time.Time) ([]UserReport, error)
	Calendar(ctx context.Context, employeeID string, start, end time.Time) ([]CalendarDayResponse, error)
}
