package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
)

type dailyAttendanceRepository struct {
	db *database.DB
}

func NewDailyAttendanceRepository(db *database.DB) attendance.Repository {
	return &dailyAttendanceRepository{db: db}
}

// Upsert implements attendance.Repository.
func (r *dailyAttendanceRepository) Upsert(ctx context.Context, record attendance.DailyRecord) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_attendance_records (
			employee_id, date, first_check_in, last_check_out,
			total_worked_minutes, entry_pair_count, status, status_reason,
			is_incomplete_day
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			first_check_in = EXCLUDED.first_check_in,
			last_check_out = EXCLUDED.last_check_out,
			total_worked_minutes = EXCLUDED.total_worked_minutes,
			entry_pair_count = EXCLUDED.entry_pair_count,
			status = EXCLUDED.status,
			status_reason = EXCLUDED.status_reason,
			is_incomplete_day = EXCLUDED.is_incomplete_day,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.FirstCheckIn,
		record.LastCheckOut,
		record.TotalWorkedMinutes,
		record.EntryPairCount,
		record.Status,
		record.StatusReason,
		record.IsIncompleteDay,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert daily attendance record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *dailyAttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, first_check_in, last_check_out,
			   total_worked_minutes, entry_pair_count, status, status_reason,
			   is_incomplete_day, created_at, updated_at
		FROM daily_attendance_records
		WHERE employee_id = $1 AND date = $2
	`

	record, err := scanDailyRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily attendance record: %w", err)
	}

	return &record, nil
}

// ListByEmployeeAndRange implements attendance.Repository.
func (r *dailyAttendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, first_check_in, last_check_out,
			   total_worked_minutes, entry_pair_count, status, status_reason,
			   is_incomplete_day, created_at, updated_at
		FROM daily_attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		record, err := scanDailyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance row: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanDailyRecord(row pgx.Row) (attendance.DailyRecord, error) {
	var record attendance.DailyRecord
	var status string

	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Date,
		&record.FirstCheckIn, &record.LastCheckOut,
		&record.TotalWorkedMinutes, &record.EntryPairCount,
		&status, &record.StatusReason,
		&record.IsIncompleteDay, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	// Reject unknown stored statuses at the boundary
	record.Status, err = attendance.ParseDayStatus(status)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("record %s: %w", record.ID, err)
	}

	return record, nil
}
