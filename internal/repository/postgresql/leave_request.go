package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Repository {
	return &leaveRequestRepository{db: db}
}

// FindApprovedOnDate implements leave.Repository.
func (r *leaveRequestRepository) FindApprovedOnDate(ctx context.Context, employeeID string, date time.Time) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, leave_type, status, reason,
			   created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $3
		  AND end_date >= $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	var req leave.Request
	err := q.QueryRow(ctx, query, employeeID, leave.StatusApproved, date).Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate,
		&req.LeaveType, &req.Status, &req.Reason,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find approved leave on date: %w", err)
	}

	return &req, nil
}

// ListOverlapping implements leave.Repository.
func (r *leaveRequestRepository) ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, statuses []leave.RequestStatus) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, leave_type, status, reason,
			   created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = ANY($2)
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date ASC
	`

	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}

	rows, err := q.Query(ctx, query, employeeID, statusStrs, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate,
			&req.LeaveType, &req.Status, &req.Reason,
			&req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
