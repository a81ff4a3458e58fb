package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
)

type scanRepository struct {
	db *database.DB
}

func NewScanRepository(db *database.DB) scan.Repository {
	return &scanRepository{db: db}
}

// Create implements scan.Repository.
func (r *scanRepository) Create(ctx context.Context, event scan.Event) (scan.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO scan_events (
			employee_id, timestamp, direction, device_address, is_manual,
			sequence_index, is_extra_scan
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (employee_id, timestamp) DO NOTHING
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		event.EmployeeID,
		event.Timestamp,
		event.Direction,
		event.DeviceAddress,
		event.IsManual,
		event.SequenceIndex,
		event.IsExtraScan,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return scan.Event{}, scan.ErrDuplicateScan
		}
		return scan.Event{}, fmt.Errorf("failed to create scan event: %w", err)
	}

	return event, nil
}

// CreateBatch implements scan.Repository.
func (r *scanRepository) CreateBatch(ctx context.Context, events []scan.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO scan_events (
			employee_id, timestamp, direction, device_address, is_manual,
			sequence_index, is_extra_scan
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (employee_id, timestamp) DO NOTHING
	`

	inserted := 0
	for _, event := range events {
		tag, err := q.Exec(ctx, query,
			event.EmployeeID,
			event.Timestamp,
			event.Direction,
			event.DeviceAddress,
			event.IsManual,
			event.SequenceIndex,
			event.IsExtraScan,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert scan event batch: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ListByEmployeeAndDate implements scan.Repository.
func (r *scanRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]scan.Event, error) {
	q := GetQuerier(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT id, employee_id, timestamp, direction, device_address, is_manual,
			   sequence_index, is_extra_scan, created_at
		FROM scan_events
		WHERE employee_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan events: %w", err)
	}
	defer rows.Close()

	var events []scan.Event
	for rows.Next() {
		var e scan.Event
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Timestamp, &e.Direction, &e.DeviceAddress,
			&e.IsManual, &e.SequenceIndex, &e.IsExtraScan, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scan event row: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// UpdateDerived implements scan.Repository.
func (r *scanRepository) UpdateDerived(ctx context.Context, id string, direction scan.Direction, sequenceIndex int, isExtra bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE scan_events
		SET direction = $2, sequence_index = $3, is_extra_scan = $4
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, direction, sequenceIndex, isExtra)
	if err != nil {
		return fmt.Errorf("failed to update derived scan fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scan.ErrScanNotFound
	}

	return nil
}

// Exists implements scan.Repository.
func (r *scanRepository) Exists(ctx context.Context, employeeID string, timestamp time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM scan_events WHERE employee_id = $1 AND timestamp = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, timestamp).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check scan existence: %w", err)
	}

	return exists, nil
}
