package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
)

type permissionRequestRepository struct {
	db *database.DB
}

func NewPermissionRequestRepository(db *database.DB) permission.Repository {
	return &permissionRequestRepository{db: db}
}

// FindApprovedOnDate implements permission.Repository.
func (r *permissionRequestRepository) FindApprovedOnDate(ctx context.Context, employeeID string, date time.Time) (*permission.Request, error) {
	q := GetQuerier(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT id, employee_id, start_time, end_time, status, reason,
			   created_at, updated_at
		FROM permission_requests
		WHERE employee_id = $1
		  AND status = $2
		  AND start_time < $3
		  AND end_time > $4
		ORDER BY start_time ASC
		LIMIT 1
	`

	var req permission.Request
	err := q.QueryRow(ctx, query, employeeID, permission.StatusApproved, dayEnd, dayStart).Scan(
		&req.ID, &req.EmployeeID, &req.StartTime, &req.EndTime,
		&req.Status, &req.Reason, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find approved permission on date: %w", err)
	}

	return &req, nil
}

// ListOverlapping implements permission.Repository.
func (r *permissionRequestRepository) ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, statuses []permission.RequestStatus) ([]permission.Request, error) {
	q := GetQuerier(ctx, r.db)

	rangeStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	rangeEnd := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).Add(24 * time.Hour)

	query := `
		SELECT id, employee_id, start_time, end_time, status, reason,
			   created_at, updated_at
		FROM permission_requests
		WHERE employee_id = $1
		  AND status = ANY($2)
		  AND start_time < $3
		  AND end_time > $4
		ORDER BY start_time ASC
	`

	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}

	rows, err := q.Query(ctx, query, employeeID, statusStrs, rangeEnd, rangeStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping permission requests: %w", err)
	}
	defer rows.Close()

	var requests []permission.Request
	for rows.Next() {
		var req permission.Request
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.StartTime, &req.EndTime,
			&req.Status, &req.Reason, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan permission request row: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
