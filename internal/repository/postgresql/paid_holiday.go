package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/veritime/attendance-backend-go/internal/domain/holiday"
	"github.com/veritime/attendance-backend-go/internal/pkg/database"
)

type paidHolidayRepository struct {
	db *database.DB
}

func NewPaidHolidayRepository(db *database.DB) holiday.Repository {
	return &paidHolidayRepository{db: db}
}

// ListOverlapping implements holiday.Repository.
func (r *paidHolidayRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]holiday.PaidHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_type, start_date, end_date, description, created_at
		FROM paid_holidays
		WHERE start_date <= $1
		  AND COALESCE(end_date, start_date) >= $2
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping paid holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.PaidHoliday
	for rows.Next() {
		var h holiday.PaidHoliday
		if err := rows.Scan(
			&h.ID, &h.HolidayType, &h.StartDate, &h.EndDate, &h.Description, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan paid holiday row: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// FindOnDate implements holiday.Repository.
func (r *paidHolidayRepository) FindOnDate(ctx context.Context, date time.Time) (*holiday.PaidHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_type, start_date, end_date, description, created_at
		FROM paid_holidays
		WHERE start_date <= $1
		  AND COALESCE(end_date, start_date) >= $1
		LIMIT 1
	`

	var h holiday.PaidHoliday
	err := q.QueryRow(ctx, query, date).Scan(
		&h.ID, &h.HolidayType, &h.StartDate, &h.EndDate, &h.Description, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find paid holiday on date: %w", err)
	}

	return &h, nil
}
