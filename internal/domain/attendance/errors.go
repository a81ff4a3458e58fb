package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("daily attendance record not found")
	ErrInvalidStatus  = errors.New("invalid day status")
	// ErrNotApplicable signals a date before the employee's joining date.
	ErrNotApplicable = errors.New("date is before employee joining date")
	// ErrNoScans signals a day with no scan events: no record is produced,
	// which is distinct from a record with status absent.
	ErrNoScans = errors.New("no scan events for this day")
)
