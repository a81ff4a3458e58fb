package holiday

import (
	"time"
)

// Type distinguishes single-day holidays from date ranges.
type Type string

const (
	TypeDay   Type = "day"
	TypeRange Type = "range"
)

// Valid reports whether t is a known holiday type.
func (t Type) Valid() bool {
	return t == TypeDay || t == TypeRange
}

// PaidHoliday is a company-wide paid holiday, either a single day or an
// inclusive date range.
type PaidHoliday struct {
	ID          string
	HolidayType Type
	StartDate   time.Time
	EndDate     *time.Time
	Description string
	CreatedAt   time.Time
}

// Covers reports whether the holiday covers the given calendar date.
func (h PaidHoliday) Covers(d time.Time) bool {
	if h.HolidayType == TypeRange && h.EndDate != nil {
		return !d.Before(h.StartDate) && !d.After(*h.EndDate)
	}
	return sameDay(h.StartDate, d)
}

// LastDate returns the final covered date (the start date for single-day
// holidays).
func (h PaidHoliday) LastDate() time.Time {
	if h.HolidayType == TypeRange && h.EndDate != nil {
		return *h.EndDate
	}
	return h.StartDate
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
