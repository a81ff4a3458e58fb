package syncfailure

import (
	"time"
)

// Kind categorizes a sync failure event.
type Kind string

const (
	// KindConfig means no active device is configured.
	KindConfig Kind = "config_error"
	// KindConnection means the device was unreachable after retries.
	KindConnection Kind = "connection_error"
	// KindUnmatchedEmployee means a device reading had no matching employee.
	KindUnmatchedEmployee Kind = "unmatched_employee"
	// KindReconciliation means reconciling one (employee, date) pair failed.
	KindReconciliation Kind = "reconciliation_error"
	// KindSync covers any other mid-sync failure.
	KindSync Kind = "sync_error"
)

// Valid reports whether k is a known failure kind.
func (k Kind) Valid() bool {
	switch k {
	case KindConfig, KindConnection, KindUnmatchedEmployee, KindReconciliation, KindSync:
		return true
	}
	return false
}

// Event is one entry in the append-only sync failure audit trail.
type Event struct {
	ID             string
	Kind           Kind
	Message        string
	DeviceAddress  *string
	EmployeeID     *string
	RawPayload     *string
	Resolved       bool
	ResolutionNote *string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}
