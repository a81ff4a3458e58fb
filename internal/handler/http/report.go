package http

import (
	"net/http"
	"strings"

	"github.com/veritime/attendance-backend-go/internal/domain/report"
	"github.com/veritime/attendance-backend-go/internal/handler/http/response"
)

// ReportHandler defines the report handler interface
type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	TeamSummary(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Summary returns the attendance summary metrics for one employee
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req := report.SummaryRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	start, end, errs := req.Validate()
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	summary, err := h.reportService.Aggregate(r.Context(), req.EmployeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// TeamSummary returns summaries for a comma-separated list of employees
func (h *reportHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	req := report.SummaryRequest{
		EmployeeID: r.URL.Query().Get("employee_ids"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	start, end, errs := req.Validate()
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	var ids []string
	for _, id := range strings.Split(req.EmployeeID, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	reports, err := h.reportService.AggregateMany(r.Context(), ids, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// Calendar returns the per-day calendar view for one employee
func (h *reportHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	req := report.SummaryRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	start, end, errs := req.Validate()
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	days, err := h.reportService.Calendar(r.Context(), req.EmployeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}
