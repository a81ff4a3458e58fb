package attendance

import (
	"context"
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/scan"
)

// ReprocessResult summarizes a range re-reconciliation run.
type ReprocessResult struct {
	DaysProcessed int      `json:"days_processed"`
	DaysSkipped   int      `json:"days_skipped"`
	Errors        []string `json:"errors,omitempty"`
}

// Service defines the reconciliation service interface
type Service interface {
	// ReconcileDay rebuilds the daily record for one (employee, date)
	// pair. Returns ErrNotApplicable for dates before joining and
	// ErrNoScans when the day has no scan events.
	ReconcileDay(ctx context.Context, employeeID string, date time.Time) (DailyRecord, error)
	// ReconcileRange re-runs reconciliation over an inclusive date span,
	// isolating per-day failures.
	ReconcileRange(ctx context.Context, employeeID string, start, end time.Time) (ReprocessResult, error)
	// AddManualScan records an admin-entered scan event and reconciles
	// the affected day.
	AddManualScan(ctx context.Context, employeeID string, timestamp time.Time, direction scan.Direction) (DailyRecord, error)
	// ListScans returns the raw scan events of one day.
	ListScans(ctx context.Context, employeeID string, date time.Time) ([]scan.Event, error)
}
