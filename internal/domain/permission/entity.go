package permission

import (
	"time"
)

// RequestStatus is the approval state of a permission request.
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

// Request is a time-bounded permission to be away, possibly spanning a
// partial day. Owned by the approval workflow; this core only reads it.
type Request struct {
	ID         string
	EmployeeID string
	StartTime  time.Time
	EndTime    time.Time
	Status     RequestStatus
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CoversDate reports whether the request touches the given calendar date.
func (r Request) CoversDate(d time.Time) bool {
	dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	return r.StartTime.Before(dayEnd) && r.EndTime.After(dayStart)
}

// OverlapHours returns the duration in hours of the overlap between the
// request and the inclusive date range [start, end].
func (r Request) OverlapHours(start, end time.Time) float64 {
	rangeStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	rangeEnd := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).Add(24 * time.Hour)

	from := r.StartTime
	if from.Before(rangeStart) {
		from = rangeStart
	}
	to := r.EndTime
	if to.After(rangeEnd) {
		to = rangeEnd
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from).Hours()
}
