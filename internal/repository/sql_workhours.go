package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
)

type SQLWorkHoursRepo struct {
	db db.DBTX
}

func NewSQLWorkHoursRepo(conn db.DBTX) *SQLWorkHoursRepo {
	return &SQLWorkHoursRepo{db: conn}
}

func (r *SQLWorkHoursRepo) Get(ctx context.Context) (domain.WeeklySchedule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT weekday, start_min, end_min FROM work_slots ORDER BY weekday, start_min`)
	if err != nil {
		return nil, fmt.Errorf("reading work hours: %w", err)
	}
	defer rows.Close()

	ws := domain.WeeklySchedule{}
	n := 0
	for rows.Next() {
		var wd, start, end int
		if err := rows.Scan(&wd, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning work slot: %w", err)
		}
		weekday := time.Weekday(wd)
		ws[weekday] = append(ws[weekday], domain.TimeSlot{Start: domain.ClockTime(start), End: domain.ClockTime(end)})
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work slots: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("work hours: %w", ErrNotFound)
	}
	return ws, nil
}

// Replace swaps the stored schedule for ws. Callers should run it inside a
// transaction so readers never observe a half-written week.
func (r *SQLWorkHoursRepo) Replace(ctx context.Context, ws domain.WeeklySchedule) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_slots`); err != nil {
		return fmt.Errorf("clearing work hours: %w", err)
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		for _, slot := range ws[wd] {
			_, err := r.db.ExecContext(ctx, `INSERT INTO work_slots (weekday, start_min, end_min) VALUES (?, ?, ?)`,
				int(wd), int(slot.Start), int(slot.End))
			if err != nil {
				return fmt.Errorf("inserting work slot %s %s: %w", wd, slot, err)
			}
		}
	}
	return nil
}
