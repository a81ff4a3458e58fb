package leave

import (
	"context"
	"time"
)

// Repository defines the read-only leave request queries used by the
// reconciliation and reporting pipeline.
type Repository interface {
	// FindApprovedOnDate returns an approved request covering the date,
	// or nil when none exists.
	FindApprovedOnDate(ctx context.Context, employeeID string, date time.Time) (*Request, error)
	// ListOverlapping returns requests with any of the given statuses
	// whose date span overlaps [start, end].
	ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, statuses []RequestStatus) ([]Request, error)
}
