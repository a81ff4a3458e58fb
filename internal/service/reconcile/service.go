package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/employee"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
	"github.com/veritime/attendance-backend-go/internal/repository/postgresql"
)

type service struct {
	db             *database.DB
	scanRepo       scan.Repository
	recordRepo     attendance.Repository
	leaveRepo      leave.Repository
	permissionRepo permission.Repository
	employeeRepo   employee.Repository
}

// NewService creates the daily reconciliation service.
func NewService(
	db *database.DB,
	scanRepo scan.Repository,
	recordRepo attendance.Repository,
	leaveRepo leave.Repository,
	permissionRepo permission.Repository,
	employeeRepo employee.Repository,
) attendance.Service {
	return &service{
		db:             db,
		scanRepo:       scanRepo,
		recordRepo:     recordRepo,
		leaveRepo:      leaveRepo,
		permissionRepo: permissionRepo,
		employeeRepo:   employeeRepo,
	}
}

// ReconcileDay implements attendance.Service.
func (s *service) ReconcileDay(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	day := truncateToDay(date)
	if day.Before(truncateToDay(emp.JoiningDate)) {
		return attendance.DailyRecord{}, attendance.ErrNotApplicable
	}

	events, err := s.scanRepo.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("fetch scans for %s on %s: %w", employeeID, day.Format("2006-01-02"), err)
	}
	if len(events) == 0 {
		return attendance.DailyRecord{}, attendance.ErrNoScans
	}

	approvedLeave, err := s.leaveRepo.FindApprovedOnDate(ctx, employeeID, day)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("fetch approved leave: %w", err)
	}
	approvedPermission, err := s.permissionRepo.FindApprovedOnDate(ctx, employeeID, day)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("fetch approved permission: %w", err)
	}

	record, derived := buildDailyRecord(events, approvedLeave, approvedPermission, employeeID, day)

	// One transaction per (employee, date): a failure here rolls back this
	// pair alone and never aborts sibling days.
	var saved attendance.DailyRecord
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		for _, e := range derived {
			if err := s.scanRepo.UpdateDerived(txCtx, e.ID, e.Direction, e.SequenceIndex, e.IsExtraScan); err != nil {
				return fmt.Errorf("update derived fields for scan %s: %w", e.ID, err)
			}
		}

		saved, err = s.recordRepo.Upsert(txCtx, record)
		return err
	})
	if err != nil {
		slog.Error("Reconciliation failed",
			"employee_id", employeeID,
			"date", day.Format("2006-01-02"),
			"error", err,
		)
		return attendance.DailyRecord{}, err
	}

	return saved, nil
}

// ReconcileRange implements attendance.Service.
func (s *service) ReconcileRange(ctx context.Context, employeeID string, start, end time.Time) (attendance.ReprocessResult, error) {
	var result attendance.ReprocessResult

	for day := truncateToDay(start); !day.After(truncateToDay(end)); day = day.AddDate(0, 0, 1) {
		_, err := s.ReconcileDay(ctx, employeeID, day)
		switch {
		case err == nil:
			result.DaysProcessed++
		case errors.Is(err, attendance.ErrNoScans), errors.Is(err, attendance.ErrNotApplicable):
			result.DaysSkipped++
		case errors.Is(err, employee.ErrEmployeeNotFound):
			return result, err
		default:
			// Per-day errors are collected, never abort the sweep
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %v", day.Format("2006-01-02"), err))
		}
	}

	return result, nil
}

// AddManualScan implements attendance.Service.
func (s *service) AddManualScan(ctx context.Context, employeeID string, timestamp time.Time, direction scan.Direction) (attendance.DailyRecord, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.DailyRecord{}, err
	}

	if !direction.Valid() {
		direction = scan.Classify(timestamp)
	}

	event := scan.Event{
		EmployeeID: employeeID,
		Timestamp:  timestamp,
		Direction:  direction,
		IsManual:   true,
	}

	if _, err := s.scanRepo.Create(ctx, event); err != nil {
		return attendance.DailyRecord{}, err
	}

	return s.ReconcileDay(ctx, employeeID, timestamp)
}

// ListScans implements attendance.Service.
func (s *service) ListScans(ctx context.Context, employeeID string, date time.Time) ([]scan.Event, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.scanRepo.ListByEmployeeAndDate(ctx, employeeID, truncateToDay(date))
}
