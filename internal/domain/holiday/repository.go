package holiday

import (
	"context"
	"time"
)

// Repository defines the read-only paid holiday queries.
type Repository interface {
	// ListOverlapping returns holidays whose span overlaps [start, end].
	ListOverlapping(ctx context.Context, start, end time.Time) ([]PaidHoliday, error)
	// FindOnDate returns a holiday covering the date, or nil.
	FindOnDate(ctx context.Context, date time.Time) (*PaidHoliday, error)
}
