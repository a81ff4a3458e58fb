package attendance

import (
	"time"
)

// DayStatus is the canonical classification of a reconciled day.
type DayStatus string

const (
	StatusPresent    DayStatus = "present"
	StatusHalfDay    DayStatus = "half_day"
	StatusPartial    DayStatus = "partial"
	StatusInOffice   DayStatus = "in_office"
	StatusLeave      DayStatus = "leave"
	StatusPermission DayStatus = "permission"
	StatusAbsent     DayStatus = "absent"
)

// Valid reports whether s is a known day status.
func (s DayStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusPartial, StatusInOffice,
		StatusLeave, StatusPermission, StatusAbsent:
		return true
	}
	return false
}

// ParseDayStatus converts a stored string into a DayStatus, rejecting
// unknown values at the boundary instead of propagating them.
func ParseDayStatus(s string) (DayStatus, error) {
	status := DayStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// DailyRecord is the single canonical attendance record for one
// (employee, date) pair, produced by reconciliation.
type DailyRecord struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	FirstCheckIn       *time.Time
	LastCheckOut       *time.Time
	TotalWorkedMinutes int
	EntryPairCount     int
	Status             DayStatus
	StatusReason       *string
	IsIncompleteDay    bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// WorkedHours returns the worked time in fractional hours.
func (r DailyRecord) WorkedHours() float64 {
	return float64(r.TotalWorkedMinutes) / 60.0
}

// HasBounds reports whether both check-in and check-out are known.
func (r DailyRecord) HasBounds() bool {
	return r.FirstCheckIn != nil && r.LastCheckOut != nil
}

// HasAttendance reports whether any scan bound exists for the day.
func (r DailyRecord) HasAttendance() bool {
	return r.FirstCheckIn != nil || r.LastCheckOut != nil
}
