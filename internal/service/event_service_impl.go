package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/repository"
)

type eventService struct {
	events   repository.EventRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewEventService(events repository.EventRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EventService {
	return &eventService{
		events:   events,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create stores e. An event crossing midnight is stored as one event per
// day; e is left holding the first part.
func (s *eventService) Create(ctx context.Context, e *domain.CalendarEvent) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "event-create", time.Now(), map[string]any{"type": string(e.Type)}, &err)

	if e.ID == "" {
		e.ID = newID()
	}
	if err = normalizeEvent(e); err != nil {
		return nil, err
	}
	result = &contract.MutationResult{ID: e.ID}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		now := nowUTC()
		e.CreatedAt = now
		e.UpdatedAt = now
		first, err := storeSplit(ctx, reposFor(tx).events, *e, false, result)
		if err != nil {
			return err
		}
		*e = first
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context, f repository.EventFilter) ([]domain.CalendarEvent, error) {
	return s.events.List(ctx, f)
}

func (s *eventService) ListRange(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	start := dateutil.StartOfDay(from)
	end := dateutil.StartOfDay(to).AddDate(0, 0, 1)
	return s.events.List(ctx, repository.EventFilter{From: &start, To: &end})
}

// Update rewrites an event. Continuation parts from an earlier split are
// replaced by whatever the new times produce.
func (s *eventService) Update(ctx context.Context, e *domain.CalendarEvent) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "event-update", time.Now(), map[string]any{"event_id": e.ID}, &err)

	if err = normalizeEvent(e); err != nil {
		return nil, err
	}
	result = &contract.MutationResult{ID: e.ID}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := reposFor(tx).events
		stored, err := events.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if err := deleteContinuations(ctx, events, e.ID); err != nil {
			return err
		}
		e.OriginalEventID = stored.OriginalEventID
		e.CreatedAt = stored.CreatedAt
		e.UpdatedAt = nowUTC()
		first, err := storeSplit(ctx, events, *e, true, result)
		if err != nil {
			return err
		}
		*e = first
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an event together with any parts it was split into.
func (s *eventService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "event-delete", time.Now(), map[string]any{"event_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := reposFor(tx).events
		if _, err := events.GetByID(ctx, id); err != nil {
			return err
		}
		if err := deleteContinuations(ctx, events, id); err != nil {
			return err
		}
		return events.Delete(ctx, id)
	})
}

// Complete marks an event and its split parts as done.
func (s *eventService) Complete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "event-complete", time.Now(), map[string]any{"event_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := reposFor(tx).events
		e, err := events.GetByID(ctx, id)
		if err != nil {
			return err
		}
		parts, err := events.List(ctx, repository.EventFilter{OriginalEventID: id})
		if err != nil {
			return err
		}
		now := nowUTC()
		for _, part := range append([]domain.CalendarEvent{*e}, parts...) {
			part.Completed = true
			part.UpdatedAt = now
			if err := events.Update(ctx, &part); err != nil {
				return err
			}
		}
		return nil
	})
}

// StartTracking opens a tracked event at at. Any tracker already running is
// stopped at the same moment.
func (s *eventService) StartTracking(ctx context.Context, title string, projectID *string, at time.Time) (tracked *domain.CalendarEvent, result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "event-start-tracking", time.Now(), map[string]any{"title": title}, &err)

	at = dateutil.WallClock(at)
	now := nowUTC()
	e := &domain.CalendarEvent{
		ID:        newID(),
		Title:     title,
		Start:     at,
		End:       at,
		ProjectID: projectID,
		Type:      domain.EventTracked,
		Category:  domain.CategoryEvent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = e.Validate(); err != nil {
		return nil, nil, err
	}

	result = &contract.MutationResult{ID: e.ID}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := reposFor(tx).events
		running, err := events.ListRunning(ctx)
		if err != nil {
			return err
		}
		for _, prev := range running {
			if err := stopTracker(ctx, events, prev, at, result); err != nil {
				return err
			}
			result.Add(contract.NoticeTrackingAutoStopped, prev.ID,
				fmt.Sprintf("stopped %q at %s", prev.Title, at.Format(dateutil.WallClockLayout)))
		}
		return events.Create(ctx, e)
	})
	if err != nil {
		return nil, nil, err
	}
	return e, result, nil
}

func (s *eventService) StopTracking(ctx context.Context, id string, at time.Time) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "event-stop-tracking", time.Now(), map[string]any{"event_id": id}, &err)

	at = dateutil.WallClock(at)
	result = &contract.MutationResult{ID: id}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := reposFor(tx).events
		e, err := events.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !isRunning(e) {
			return contract.NewError(contract.ErrNotTracking, fmt.Sprintf("event %s is not a running tracker", id))
		}
		return stopTracker(ctx, events, *e, at, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *eventService) Running(ctx context.Context) ([]domain.CalendarEvent, error) {
	return s.events.ListRunning(ctx)
}

func isRunning(e *domain.CalendarEvent) bool {
	return e.Type == domain.EventTracked && e.End.Equal(e.Start)
}

// normalizeEvent puts event times on the wall clock, fills default type and
// category, then validates.
func normalizeEvent(e *domain.CalendarEvent) error {
	e.Start = dateutil.WallClock(e.Start)
	e.End = dateutil.WallClock(e.End)
	if typ, err := domain.ParseEventType(string(e.Type)); err == nil {
		e.Type = typ
	}
	if cat, err := domain.ParseEventCategory(string(e.Category)); err == nil {
		e.Category = cat
	}
	if e.Type == domain.EventCompleted {
		e.Completed = true
	}
	return e.Validate()
}

// storeSplit writes e as one row per calendar day it covers and returns the
// first part. With update set the first part overwrites the existing row.
func storeSplit(ctx context.Context, events repository.EventRepo, e domain.CalendarEvent, update bool, result *contract.MutationResult) (domain.CalendarEvent, error) {
	parts := e.SplitAtMidnight(newID)
	root := e.ID
	if e.OriginalEventID != nil {
		root = *e.OriginalEventID
	}
	for i := range parts {
		var err error
		switch {
		case i > 0:
			parts[i].OriginalEventID = &root
			err = events.Create(ctx, &parts[i])
		case update:
			err = events.Update(ctx, &parts[i])
		default:
			err = events.Create(ctx, &parts[i])
		}
		if err != nil {
			return domain.CalendarEvent{}, err
		}
	}
	if len(parts) > 1 {
		result.Add(contract.NoticeEventSplit, e.ID, fmt.Sprintf("event crosses midnight; stored as %d daily parts", len(parts)))
	}
	return parts[0], nil
}

func deleteContinuations(ctx context.Context, events repository.EventRepo, id string) error {
	parts, err := events.List(ctx, repository.EventFilter{OriginalEventID: id})
	if err != nil {
		return err
	}
	for _, part := range parts {
		if err := events.Delete(ctx, part.ID); err != nil {
			return err
		}
	}
	return nil
}

func stopTracker(ctx context.Context, events repository.EventRepo, e domain.CalendarEvent, at time.Time, result *contract.MutationResult) error {
	if at.Before(e.Start) {
		return &domain.ValidationError{Code: domain.CodeInvalidEvent, EntityID: e.ID,
			Message: fmt.Sprintf("cannot stop at %s, before the tracker started at %s",
				at.Format(dateutil.WallClockLayout), e.Start.Format(dateutil.WallClockLayout))}
	}
	e.End = at
	e.UpdatedAt = nowUTC()
	_, err := storeSplit(ctx, events, e, true, result)
	return err
}
