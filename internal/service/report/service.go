package report

import (
	"context"
	"fmt"
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/employee"
	"github.com/veritime/attendance-backend-go/internal/domain/holiday"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
	"github.com/veritime/attendance-backend-go/internal/domain/report"
	"github.com/veritime/attendance-backend-go/internal/service/calendar"
)

// SyncTrigger requests a best-effort background device sync. It must
// never block the caller.
type SyncTrigger func()

type service struct {
	recordRepo     attendance.Repository
	leaveRepo      leave.Repository
	permissionRepo permission.Repository
	holidayRepo    holiday.Repository
	employeeRepo   employee.Repository
	triggerSync    SyncTrigger
	now            func() time.Time
}

// NewService creates the report aggregation service. triggerSync may be
// nil when no background sync should be requested by read paths.
func NewService(
	recordRepo attendance.Repository,
	leaveRepo leave.Repository,
	permissionRepo permission.Repository,
	holidayRepo holiday.Repository,
	employeeRepo employee.Repository,
	triggerSync SyncTrigger,
) report.Service {
	return &service{
		recordRepo:     recordRepo,
		leaveRepo:      leaveRepo,
		permissionRepo: permissionRepo,
		holidayRepo:    holidayRepo,
		employeeRepo:   employeeRepo,
		triggerSync:    triggerSync,
		now:            time.Now,
	}
}

// Aggregate implements report.Service.
func (s *service) Aggregate(ctx context.Context, employeeID string, start, end time.Time) (report.SummaryMetrics, error) {
	// Freshen data opportunistically; the read path never waits on it
	if s.triggerSync != nil {
		s.triggerSync()
	}

	input, err := s.fetchInput(ctx, employeeID, start, end)
	if err != nil {
		return report.SummaryMetrics{}, err
	}

	return computeSummary(input), nil
}

// AggregateMany implements report.Service.
func (s *service) AggregateMany(ctx context.Context, employeeIDs []string, start, end time.Time) ([]report.UserReport, error) {
	if s.triggerSync != nil {
		s.triggerSync()
	}

	reports := make([]report.UserReport, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		emp, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		input, err := s.fetchInput(ctx, id, start, end)
		if err != nil {
			return nil, err
		}

		reports = append(reports, report.UserReport{
			EmployeeID:   id,
			EmployeeName: emp.FullName,
			Summary:      computeSummary(input),
		})
	}

	return reports, nil
}

// Calendar implements report.Service.
func (s *service) Calendar(ctx context.Context, employeeID string, start, end time.Time) ([]report.CalendarDayResponse, error) {
	input, err := s.fetchInput(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	rangeData := calendar.RangeData{
		JoiningDate: input.JoiningDate,
		Today:       input.Today,
		Records:     input.recordsByDay(),
		Leaves:      input.approvedLeaves(),
		Permissions: input.approvedPermissions(),
		Holidays:    input.Holidays,
	}

	contexts := calendar.ResolveRange(start, end, rangeData)
	days := make([]report.CalendarDayResponse, len(contexts))
	for i, dayCtx := range contexts {
		day := report.CalendarDayResponse{
			Date:           dayCtx.Date.Format("2006-01-02"),
			Kind:           string(dayCtx.Kind),
			Label:          dayCtx.Label,
			ExtraTimeHours: round1(dayCtx.ExtraTimeHours),
			HasExtraTime:   dayCtx.HasExtraTime,
		}
		if dayCtx.Record != nil {
			day.FirstCheckIn = dayCtx.Record.FirstCheckIn
			day.LastCheckOut = dayCtx.Record.LastCheckOut
			day.WorkedHours = round1(dayCtx.Record.WorkedHours())
			day.IsIncomplete = dayCtx.Record.IsIncompleteDay
		}
		days[i] = day
	}

	return days, nil
}

func (s *service) fetchInput(ctx context.Context, employeeID string, start, end time.Time) (summaryInput, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return summaryInput{}, err
	}

	records, err := s.recordRepo.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return summaryInput{}, fmt.Errorf("%w: fetch records: %v", report.ErrAggregation, err)
	}

	// Pending entries count toward summary totals alongside approved ones
	statuses := []leave.RequestStatus{leave.StatusApproved, leave.StatusPending}
	leaves, err := s.leaveRepo.ListOverlapping(ctx, employeeID, start, end, statuses)
	if err != nil {
		return summaryInput{}, fmt.Errorf("%w: fetch leaves: %v", report.ErrAggregation, err)
	}

	permStatuses := []permission.RequestStatus{permission.StatusApproved, permission.StatusPending}
	permissions, err := s.permissionRepo.ListOverlapping(ctx, employeeID, start, end, permStatuses)
	if err != nil {
		return summaryInput{}, fmt.Errorf("%w: fetch permissions: %v", report.ErrAggregation, err)
	}

	holidays, err := s.holidayRepo.ListOverlapping(ctx, start, end)
	if err != nil {
		return summaryInput{}, fmt.Errorf("%w: fetch holidays: %v", report.ErrAggregation, err)
	}

	return summaryInput{
		Start:       start,
		End:         end,
		JoiningDate: emp.JoiningDate,
		Today:       s.now(),
		Records:     records,
		Leaves:      leaves,
		Permissions: permissions,
		Holidays:    holidays,
	}, nil
}
