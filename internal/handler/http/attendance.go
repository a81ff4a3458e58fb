package http

import (
	"encoding/json"
	"net/http"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
	"github.com/veritime/attendance-backend-go/internal/handler/http/response"
	"github.com/veritime/attendance-backend-go/internal/pkg/validator"
)

// AttendanceHandler defines the attendance handler interface
type AttendanceHandler interface {
	Reconcile(w http.ResponseWriter, r *http.Request)
	Reprocess(w http.ResponseWriter, r *http.Request)
	AddManualScan(w http.ResponseWriter, r *http.Request)
	ListScans(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Reconcile rebuilds the daily record for one employee and date
func (h *attendanceHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req attendance.ReconcileDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	date, errs := req.Validate()
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	record, err := h.attendanceService.ReconcileDay(r.Context(), req.EmployeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day reconciled", record.ToResponse())
}

// Reprocess re-runs reconciliation over a date range
func (h *attendanceHandlerImpl) Reprocess(w http.ResponseWriter, r *http.Request) {
	var req attendance.ReprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	start, end, errs := req.Validate()
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.attendanceService.ReconcileRange(r.Context(), req.EmployeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Range reprocessed", result)
}

// AddManualScan records an admin-entered scan event
func (h *attendanceHandlerImpl) AddManualScan(w http.ResponseWriter, r *http.Request) {
	var req scan.ManualScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	ts, errs := req.Validate()
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	record, err := h.attendanceService.AddManualScan(r.Context(), req.EmployeeID, ts, scan.Direction(req.Direction))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual scan recorded", record.ToResponse())
}

// ListScans returns the raw scan events of one employee's day
func (h *attendanceHandlerImpl) ListScans(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	dateStr := r.URL.Query().Get("date")

	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	events, err := h.attendanceService.ListScans(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]scan.EventResponse, len(events))
	for i, e := range events {
		responses[i] = e.ToResponse()
	}

	response.Success(w, responses)
}
