package report

import (
	"time"

	"github.com/veritime/attendance-backend-go/internal/pkg/validator"
)

// SummaryRequest carries the query parameters of the summary endpoint.
type SummaryRequest struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

// Validate validates the request and returns the parsed range.
func (r SummaryRequest) Validate() (time.Time, time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	start, end, rangeErrs := validator.DateRange(r.StartDate, r.EndDate)
	errs = append(errs, rangeErrs...)

	return start, end, errs
}

// CalendarDayResponse is the API shape for one resolved calendar day.
type CalendarDayResponse struct {
	Date           string     `json:"date"`
	Kind           string     `json:"kind"`
	Label          string     `json:"label,omitempty"`
	FirstCheckIn   *time.Time `json:"first_check_in,omitempty"`
	LastCheckOut   *time.Time `json:"last_check_out,omitempty"`
	WorkedHours    float64    `json:"worked_hours"`
	ExtraTimeHours float64    `json:"extra_time_hours"`
	HasExtraTime   bool       `json:"has_extra_time"`
	IsIncomplete   bool       `json:"is_incomplete"`
}
