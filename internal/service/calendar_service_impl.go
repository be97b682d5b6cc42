package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/repository"
)

type calendarService struct {
	workHours repository.WorkHoursRepo
	holidays  repository.HolidayRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver

	mu        sync.RWMutex
	overrides map[domain.WeekKey]domain.WeeklySchedule
}

func NewCalendarService(
	workHours repository.WorkHoursRepo,
	holidays repository.HolidayRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CalendarService {
	return &calendarService{
		workHours: workHours,
		holidays:  holidays,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
		overrides: make(map[domain.WeekKey]domain.WeeklySchedule),
	}
}

func (s *calendarService) GetSchedule(ctx context.Context) (domain.WeeklySchedule, error) {
	ws, err := s.workHours.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultWeeklySchedule(), nil
	}
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *calendarService) SetSchedule(ctx context.Context, ws domain.WeeklySchedule) (err error) {
	defer observe(ctx, s.observer, "calendar-set-schedule", time.Now(), map[string]any{"days": len(ws)}, &err)

	if err = ws.Validate(); err != nil {
		return err
	}
	ws = ws.Normalize()
	if len(ws) == 0 {
		return &domain.ValidationError{Code: domain.CodeInvalidSchedule,
			Message: "schedule must have at least one working slot"}
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return reposFor(tx).workHours.Replace(ctx, ws)
	})
}

func (s *calendarService) SetWeekOverride(week domain.WeekKey, ws domain.WeeklySchedule) error {
	if err := ws.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[week] = ws.Normalize()
	return nil
}

func (s *calendarService) ClearWeekOverride(week domain.WeekKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, week)
}

func (s *calendarService) WeekOverrides() map[domain.WeekKey]domain.WeeklySchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.WeekKey]domain.WeeklySchedule, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

func (s *calendarService) AddHoliday(ctx context.Context, h *domain.Holiday) (err error) {
	defer observe(ctx, s.observer, "calendar-add-holiday", time.Now(), map[string]any{"name": h.Name}, &err)

	if h.Date.IsZero() {
		return &domain.ValidationError{Code: domain.CodeRequired, Message: "holiday date is required"}
	}
	if h.ID == "" {
		h.ID = newID()
	}
	h.Name = strings.TrimSpace(h.Name)
	h.Date = dateutil.StartOfDay(h.Date)
	h.CreatedAt = nowUTC()
	return s.holidays.Create(ctx, h)
}

func (s *calendarService) ListHolidays(ctx context.Context) ([]domain.Holiday, error) {
	return s.holidays.List(ctx)
}

func (s *calendarService) DeleteHoliday(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "calendar-delete-holiday", time.Now(), map[string]any{"holiday_id": id}, &err)
	return s.holidays.Delete(ctx, id)
}

// WorkCalendar snapshots the schedule, holidays and current overrides.
func (s *calendarService) WorkCalendar(ctx context.Context) (calendar.WorkCalendar, error) {
	ws, err := s.GetSchedule(ctx)
	if err != nil {
		return calendar.WorkCalendar{}, err
	}
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return calendar.WorkCalendar{}, err
	}
	cal := calendar.New(ws, holidays)
	if overrides := s.WeekOverrides(); len(overrides) > 0 {
		cal.Overrides = overrides
	}
	return cal, nil
}
