package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
)

type SQLHolidayRepo struct {
	db db.DBTX
}

func NewSQLHolidayRepo(conn db.DBTX) *SQLHolidayRepo {
	return &SQLHolidayRepo{db: conn}
}

func (r *SQLHolidayRepo) Create(ctx context.Context, h *domain.Holiday) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO holidays (id, date, name, recurring, created_at) VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.Date.Format(dateLayout), h.Name, boolToInt(h.Recurring), formatTimestamp(h.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting holiday: %w", err)
	}
	return nil
}

func (r *SQLHolidayRepo) GetByID(ctx context.Context, id string) (*domain.Holiday, error) {
	h, err := scanHoliday(r.db.QueryRowContext(ctx,
		`SELECT id, date, name, recurring, created_at FROM holidays WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("holiday %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *SQLHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, date, name, recurring, created_at FROM holidays ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}

func (r *SQLHolidayRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	return requireAffected(res, "holiday", id)
}

func scanHoliday(s scanner) (domain.Holiday, error) {
	var h domain.Holiday
	var date, created string
	var recurring int
	if err := s.Scan(&h.ID, &date, &h.Name, &recurring, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return h, err
		}
		return h, fmt.Errorf("scanning holiday: %w", err)
	}
	var err error
	if h.Date, err = time.Parse(dateLayout, date); err != nil {
		return h, fmt.Errorf("parsing holiday date: %w", err)
	}
	if h.CreatedAt, err = parseTimestamp(created); err != nil {
		return h, fmt.Errorf("parsing holiday created_at: %w", err)
	}
	h.Recurring = intToBool(recurring)
	return h, nil
}
