package attendance

import (
	"time"

	"github.com/veritime/attendance-backend-go/internal/pkg/validator"
)

// ReconcileDayRequest asks for one (employee, date) pair to be reconciled.
type ReconcileDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

// Validate validates the request and returns the parsed date.
func (r ReconcileDayRequest) Validate() (time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	return date, errs
}

// ReprocessRequest asks for a date span to be re-reconciled.
type ReprocessRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// Validate validates the request and returns the parsed range.
func (r ReprocessRequest) Validate() (time.Time, time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	start, end, rangeErrs := validator.DateRange(r.StartDate, r.EndDate)
	errs = append(errs, rangeErrs...)

	return start, end, errs
}

// DailyRecordResponse is the API shape for a reconciled day.
type DailyRecordResponse struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	Date               string     `json:"date"`
	FirstCheckIn       *time.Time `json:"first_check_in,omitempty"`
	LastCheckOut       *time.Time `json:"last_check_out,omitempty"`
	TotalWorkedMinutes int        `json:"total_worked_minutes"`
	EntryPairCount     int        `json:"entry_pair_count"`
	Status             DayStatus  `json:"status"`
	StatusReason       *string    `json:"status_reason,omitempty"`
	IsIncompleteDay    bool       `json:"is_incomplete_day"`
}

// ToResponse converts a DailyRecord entity to its API shape.
func (r DailyRecord) ToResponse() DailyRecordResponse {
	return DailyRecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		Date:               r.Date.Format("2006-01-02"),
		FirstCheckIn:       r.FirstCheckIn,
		LastCheckOut:       r.LastCheckOut,
		TotalWorkedMinutes: r.TotalWorkedMinutes,
		EntryPairCount:     r.EntryPairCount,
		Status:             r.Status,
		StatusReason:       r.StatusReason,
		IsIncompleteDay:    r.IsIncompleteDay,
	}
}
