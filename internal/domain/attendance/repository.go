package attendance

import (
	"context"
	"time"
)

// Repository defines the daily attendance record repository interface
type Repository interface {
	// Upsert inserts or overwrites the record for (employee_id, date).
	Upsert(ctx context.Context, record DailyRecord) (DailyRecord, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*DailyRecord, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyRecord, error)
}
