package leave

import (
	"strings"
	"time"
)

// RequestStatus is the approval state of a leave request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Bucket is the reporting bucket a leave type rolls up into.
type Bucket string

const (
	BucketAnnual Bucket = "annual"
	BucketUnpaid Bucket = "unpaid"
	BucketPaid   Bucket = "paid"
)

// BucketFor maps a free-text leave type name to its reporting bucket.
// Annual, vacation, sick and illness leave are merged into the annual
// bucket, and that family wins over a paid/unpaid qualifier in the name
// ("Paid Sick Leave" is still annual). Unrecognized or empty types
// default to annual as well.
func BucketFor(leaveType string) Bucket {
	name := strings.ToLower(leaveType)
	switch {
	case strings.Contains(name, "annual"), strings.Contains(name, "vacation"),
		strings.Contains(name, "sick"), strings.Contains(name, "illness"):
		return BucketAnnual
	case strings.Contains(name, "unpaid"):
		return BucketUnpaid
	case strings.Contains(name, "paid"), strings.Contains(name, "holiday"):
		return BucketPaid
	default:
		return BucketAnnual
	}
}

// Request is a leave request covering an inclusive date range. Owned by
// the approval workflow; this core only reads it.
type Request struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	LeaveType  string
	Status     RequestStatus
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the request covers the given calendar date.
func (r Request) Covers(d time.Time) bool {
	return !d.Before(r.StartDate) && !d.After(r.EndDate)
}
