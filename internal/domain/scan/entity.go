package scan

import (
	"time"
)

// Direction is the resolved direction of a scan event.
type Direction string

const (
	DirectionCheckIn  Direction = "check_in"
	DirectionCheckOut Direction = "check_out"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	switch d {
	case DirectionCheckIn, DirectionCheckOut:
		return true
	}
	return false
}

// Classify maps a timestamp to a provisional direction based on time of day.
// Scans between 04:00 and 13:59 count as check-ins (covers early and
// midday-shift starts); everything else counts as a check-out.
func Classify(t time.Time) Direction {
	hour := t.Hour()
	if hour >= 4 && hour < 14 {
		return DirectionCheckIn
	}
	return DirectionCheckOut
}

// Event represents one raw biometric terminal reading. Immutable once
// recorded except for the derived fields (Direction, SequenceIndex,
// IsExtraScan) assigned during reconciliation.
type Event struct {
	ID            string
	EmployeeID    string
	Timestamp     time.Time
	Direction     Direction
	DeviceAddress *string
	IsManual      bool
	SequenceIndex int
	IsExtraScan   bool
	CreatedAt     time.Time
}
