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

type SQLPhaseRepo struct {
	db db.DBTX
}

func NewSQLPhaseRepo(conn db.DBTX) *SQLPhaseRepo {
	return &SQLPhaseRepo{db: conn}
}

const phaseColumns = `id, project_id, name, start_date, end_date, hours, order_index, created_at, updated_at`

func (r *SQLPhaseRepo) Create(ctx context.Context, ph *domain.Phase) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO phases (`+phaseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ph.ID,
		ph.ProjectID,
		ph.Name,
		ph.StartDate.Format(dateLayout),
		ph.EndDate.Format(dateLayout),
		ph.Hours,
		ph.Order,
		formatTimestamp(ph.CreatedAt),
		formatTimestamp(ph.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLPhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = ?`, id)
	ph, err := scanPhase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("phase %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &ph, nil
}

func (r *SQLPhaseRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM phases WHERE project_id = ? ORDER BY start_date, order_index, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []domain.Phase
	for rows.Next() {
		ph, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLPhaseRepo) Update(ctx context.Context, ph *domain.Phase) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE phases SET name = ?, start_date = ?, end_date = ?, hours = ?, order_index = ?, updated_at = ? WHERE id = ?`,
		ph.Name,
		ph.StartDate.Format(dateLayout),
		ph.EndDate.Format(dateLayout),
		ph.Hours,
		ph.Order,
		formatTimestamp(ph.UpdatedAt),
		ph.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return requireAffected(res, "phase", ph.ID)
}

func (r *SQLPhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return requireAffected(res, "phase", id)
}

func scanPhase(s scanner) (domain.Phase, error) {
	var ph domain.Phase
	var start, end, created, updated string
	if err := s.Scan(&ph.ID, &ph.ProjectID, &ph.Name, &start, &end, &ph.Hours, &ph.Order, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ph, err
		}
		return ph, fmt.Errorf("scanning phase: %w", err)
	}
	var err error
	if ph.StartDate, err = time.Parse(dateLayout, start); err != nil {
		return ph, fmt.Errorf("parsing phase start_date: %w", err)
	}
	if ph.EndDate, err = time.Parse(dateLayout, end); err != nil {
		return ph, fmt.Errorf("parsing phase end_date: %w", err)
	}
	if ph.CreatedAt, err = parseTimestamp(created); err != nil {
		return ph, fmt.Errorf("parsing phase created_at: %w", err)
	}
	if ph.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return ph, fmt.Errorf("parsing phase updated_at: %w", err)
	}
	return ph, nil
}
