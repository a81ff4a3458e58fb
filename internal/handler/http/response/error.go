package response

import (
	"errors"
	"net/http"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/employee"
	"github.com/veritime/attendance-backend-go/internal/domain/notification"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
	"github.com/veritime/attendance-backend-go/internal/domain/syncfailure"
	"github.com/veritime/attendance-backend-go/internal/pkg/validator"
	"github.com/veritime/attendance-backend-go/internal/service/devicesync"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoScans):
		NotFound(w, "No scan events for this day")
	case errors.Is(err, attendance.ErrNotApplicable):
		ValidationError(w, map[string]string{"date": "date precedes the employee's joining date"})
	case errors.Is(err, scan.ErrScanNotFound):
		NotFound(w, "Scan event not found")
	case errors.Is(err, scan.ErrDuplicateScan):
		Conflict(w, "Scan event already recorded")
	case errors.Is(err, scan.ErrInvalidDirection):
		BadRequest(w, "Invalid scan direction", nil)

	// Device sync errors
	case errors.Is(err, devicesync.ErrAlreadyRunning):
		Conflict(w, "A sync is already running")
	case errors.Is(err, devicesync.ErrNoDeviceConfigured):
		BadRequest(w, "No active device configured", nil)
	case errors.Is(err, syncfailure.ErrEventNotFound):
		NotFound(w, "Sync failure event not found")
	case errors.Is(err, syncfailure.ErrAlreadyResolved):
		Conflict(w, "Sync failure event already resolved")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
