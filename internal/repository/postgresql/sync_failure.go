package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/veritime/attendance-backend-go/internal/domain/syncfailure"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
)

type syncFailureRepository struct {
	db *database.DB
}

func NewSyncFailureRepository(db *database.DB) syncfailure.Repository {
	return &syncFailureRepository{db: db}
}

const syncFailureColumns = `id, error_kind, message, device_address, employee_id, raw_payload,
	   resolved, resolution_note, created_at, resolved_at`

// Create implements syncfailure.Repository.
func (r *syncFailureRepository) Create(ctx context.Context, event syncfailure.Event) (syncfailure.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sync_failure_events (
			error_kind, message, device_address, employee_id, raw_payload
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		event.Kind,
		event.Message,
		event.DeviceAddress,
		event.EmployeeID,
		event.RawPayload,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return syncfailure.Event{}, fmt.Errorf("failed to create sync failure event: %w", err)
	}

	return event, nil
}

// GetByID implements syncfailure.Repository.
func (r *syncFailureRepository) GetByID(ctx context.Context, id string) (syncfailure.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + syncFailureColumns + ` FROM sync_failure_events WHERE id = $1`

	event, err := scanSyncFailure(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return syncfailure.Event{}, syncfailure.ErrEventNotFound
		}
		return syncfailure.Event{}, fmt.Errorf("failed to get sync failure event: %w", err)
	}

	return event, nil
}

// List implements syncfailure.Repository.
func (r *syncFailureRepository) List(ctx context.Context, filter syncfailure.Filter) ([]syncfailure.Event, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.StartDate != nil {
		baseWhere += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		baseWhere += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Resolved != nil {
		baseWhere += fmt.Sprintf(" AND resolved = $%d", argIdx)
		args = append(args, *filter.Resolved)
		argIdx++
	}
	if filter.Kind != nil {
		baseWhere += fmt.Sprintf(" AND error_kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}

	query := `SELECT ` + syncFailureColumns + ` FROM sync_failure_events WHERE ` + baseWhere + ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync failure events: %w", err)
	}
	defer rows.Close()

	var events []syncfailure.Event
	for rows.Next() {
		event, err := scanSyncFailure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync failure row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// Resolve implements syncfailure.Repository.
func (r *syncFailureRepository) Resolve(ctx context.Context, id string, note string) (syncfailure.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sync_failure_events
		SET resolved = true, resolution_note = $2, resolved_at = NOW()
		WHERE id = $1 AND resolved = false
		RETURNING ` + syncFailureColumns

	event, err := scanSyncFailure(q.QueryRow(ctx, query, id, note))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either missing or already resolved; disambiguate for the caller
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return syncfailure.Event{}, syncfailure.ErrAlreadyResolved
			}
			return syncfailure.Event{}, syncfailure.ErrEventNotFound
		}
		return syncfailure.Event{}, fmt.Errorf("failed to resolve sync failure event: %w", err)
	}

	return event, nil
}

func scanSyncFailure(row pgx.Row) (syncfailure.Event, error) {
	var event syncfailure.Event
	err := row.Scan(
		&event.ID, &event.Kind, &event.Message, &event.DeviceAddress,
		&event.EmployeeID, &event.RawPayload, &event.Resolved,
		&event.ResolutionNote, &event.CreatedAt, &event.ResolvedAt,
	)
	return event, err
}
