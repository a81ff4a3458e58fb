package scan

import (
	"time"

	"github.com/veritime/attendance-backend-go/internal/pkg/validator"
)

// ManualScanRequest is the payload for an admin-entered scan event.
type ManualScanRequest struct {
	EmployeeID string `json:"employee_id"`
	Timestamp  string `json:"timestamp"`
	Direction  string `json:"direction,omitempty"`
}

// Validate validates the manual scan request and returns the parsed timestamp.
func (r ManualScanRequest) Validate() (time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	ts, ok := validator.IsValidDateTime(r.Timestamp)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be a valid ISO8601 timestamp"})
	}

	if r.Direction != "" && !Direction(r.Direction).Valid() {
		errs = append(errs, validator.ValidationError{Field: "direction", Message: "must be check_in or check_out"})
	}

	return ts, errs
}

// EventResponse is the API shape for a scan event.
type EventResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Timestamp     time.Time `json:"timestamp"`
	Direction     Direction `json:"direction"`
	DeviceAddress *string   `json:"device_address,omitempty"`
	IsManual      bool      `json:"is_manual"`
	SequenceIndex int       `json:"sequence_index"`
	IsExtraScan   bool      `json:"is_extra_scan"`
}

// ToResponse converts an Event entity to its API shape.
func (e Event) ToResponse() EventResponse {
	return EventResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Timestamp:     e.Timestamp,
		Direction:     e.Direction,
		DeviceAddress: e.DeviceAddress,
		IsManual:      e.IsManual,
		SequenceIndex: e.SequenceIndex,
		IsExtraScan:   e.IsExtraScan,
	}
}
