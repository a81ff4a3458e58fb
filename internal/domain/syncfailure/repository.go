package syncfailure

import (
	"context"
	"time"
)

// Filter narrows audit trail queries.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Resolved  *bool
	Kind      *Kind
}

// Repository defines the sync failure audit trail interface
type Repository interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context, filter Filter) ([]Event, error)
	// Resolve marks an event resolved with an operator note.
	Resolve(ctx context.Context, id string, note string) (Event, error)
}
