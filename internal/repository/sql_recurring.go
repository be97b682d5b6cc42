package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
)

type SQLRecurringRepo struct {
	db db.DBTX
}

func NewSQLRecurringRepo(conn db.DBTX) *SQLRecurringRepo {
	return &SQLRecurringRepo{db: conn}
}

// Upsert stores the project's recurring estimate, replacing any existing one.
func (r *SQLRecurringRepo) Upsert(ctx context.Context, rec *domain.RecurringEstimate) error {
	query := `INSERT INTO recurring_estimates
		(id, project_id, pattern, interval_n, weekdays, day_of_month, hours_per_occurrence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id) DO UPDATE SET
			pattern = excluded.pattern,
			interval_n = excluded.interval_n,
			weekdays = excluded.weekdays,
			day_of_month = excluded.day_of_month,
			hours_per_occurrence = excluded.hours_per_occurrence,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ProjectID,
		string(rec.Pattern),
		rec.Interval,
		formatWeekdays(rec.Weekdays),
		rec.DayOfMonth,
		rec.HoursPerOccurrence,
		formatTimestamp(rec.CreatedAt),
		formatTimestamp(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting recurring estimate: %w", err)
	}
	return nil
}

func (r *SQLRecurringRepo) GetByProject(ctx context.Context, projectID string) (*domain.RecurringEstimate, error) {
	var rec domain.RecurringEstimate
	var pattern, weekdays, created, updated string
	err := r.db.QueryRowContext(ctx, `SELECT id, project_id, pattern, interval_n, weekdays, day_of_month,
		hours_per_occurrence, created_at, updated_at FROM recurring_estimates WHERE project_id = ?`, projectID).
		Scan(&rec.ID, &rec.ProjectID, &pattern, &rec.Interval, &weekdays, &rec.DayOfMonth,
			&rec.HoursPerOccurrence, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recurring estimate for project %s: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning recurring estimate: %w", err)
	}

	rec.Pattern = domain.RecurrencePattern(pattern)
	if rec.Weekdays, err = parseWeekdays(weekdays); err != nil {
		return nil, fmt.Errorf("parsing weekdays %q: %w", weekdays, err)
	}
	if rec.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rec.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rec, nil
}

func (r *SQLRecurringRepo) DeleteByProject(ctx context.Context, projectID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recurring_estimates WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("deleting recurring estimate: %w", err)
	}
	return requireAffected(res, "recurring estimate for project", projectID)
}
