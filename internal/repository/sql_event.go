package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
)

type SQLEventRepo struct {
	db db.DBTX
}

func NewSQLEventRepo(conn db.DBTX) *SQLEventRepo {
	return &SQLEventRepo{db: conn}
}

const eventColumns = `id, title, start_at, end_at, project_id, completed, type, category, original_event_id, created_at, updated_at`

func (r *SQLEventRepo) Create(ctx context.Context, e *domain.CalendarEvent) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO calendar_events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Title,
		formatTimestamp(e.Start),
		formatTimestamp(e.End),
		nullableString(e.ProjectID),
		boolToInt(e.Completed),
		string(e.Type),
		string(e.Category),
		nullableString(e.OriginalEventID),
		formatTimestamp(e.CreatedAt),
		formatTimestamp(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLEventRepo) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM calendar_events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns events matching f ordered by start time. A zero-length event
// starting exactly at f.From is included.
func (r *SQLEventRepo) List(ctx context.Context, f EventFilter) ([]domain.CalendarEvent, error) {
	var where []string
	var args []any
	if f.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.OriginalEventID != "" {
		where = append(where, "original_event_id = ?")
		args = append(args, f.OriginalEventID)
	}
	if f.From != nil {
		from := formatTimestamp(*f.From)
		where = append(where, "(end_at > ? OR start_at = ?)")
		args = append(args, from, from)
	}
	if f.To != nil {
		where = append(where, "start_at < ?")
		args = append(args, formatTimestamp(*f.To))
	}

	query := `SELECT ` + eventColumns + ` FROM calendar_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_at, id"
	return r.query(ctx, query, args...)
}

func (r *SQLEventRepo) ListRunning(ctx context.Context) ([]domain.CalendarEvent, error) {
	return r.query(ctx, `SELECT `+eventColumns+` FROM calendar_events
		WHERE type = ? AND end_at = start_at ORDER BY start_at`, string(domain.EventTracked))
}

func (r *SQLEventRepo) Update(ctx context.Context, e *domain.CalendarEvent) error {
	res, err := r.db.ExecContext(ctx, `UPDATE calendar_events SET title = ?, start_at = ?, end_at = ?,
		project_id = ?, completed = ?, type = ?, category = ?, original_event_id = ?, updated_at = ?
		WHERE id = ?`,
		e.Title,
		formatTimestamp(e.Start),
		formatTimestamp(e.End),
		nullableString(e.ProjectID),
		boolToInt(e.Completed),
		string(e.Type),
		string(e.Category),
		nullableString(e.OriginalEventID),
		formatTimestamp(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return requireAffected(res, "event", e.ID)
}

func (r *SQLEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return requireAffected(res, "event", id)
}

func (r *SQLEventRepo) query(ctx context.Context, query string, args ...any) ([]domain.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []domain.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func scanEvent(s scanner) (domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	var start, end, typ, category, created, updated string
	var projectID, originalID sql.NullString
	var completed int

	err := s.Scan(&e.ID, &e.Title, &start, &end, &projectID, &completed, &typ, &category,
		&originalID, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("scanning event: %w", err)
	}

	if e.Start, err = parseTimestamp(start); err != nil {
		return e, fmt.Errorf("parsing event start_at: %w", err)
	}
	if e.End, err = parseTimestamp(end); err != nil {
		return e, fmt.Errorf("parsing event end_at: %w", err)
	}
	if e.CreatedAt, err = parseTimestamp(created); err != nil {
		return e, fmt.Errorf("parsing event created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return e, fmt.Errorf("parsing event updated_at: %w", err)
	}
	e.ProjectID = stringPtr(projectID)
	e.OriginalEventID = stringPtr(originalID)
	e.Completed = intToBool(completed)
	e.Type = domain.EventType(typ)
	e.Category = domain.EventCategory(category)
	return e, nil
}
