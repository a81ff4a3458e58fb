package scan

import (
	"context"
	"time"
)

// Repository defines the scan event repository interface
type Repository interface {
	Create(ctx context.Context, event Event) (Event, error)
	// CreateBatch inserts events, skipping duplicates on
	// (employee_id, timestamp). Returns the number actually inserted.
	CreateBatch(ctx context.Context, events []Event) (int, error)
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Event, error)
	// UpdateDerived writes the fields assigned during reconciliation.
	UpdateDerived(ctx context.Context, id string, direction Direction, sequenceIndex int, isExtra bool) error
	Exists(ctx context.Context, employeeID string, timestamp time.Time) (bool, error)
}
