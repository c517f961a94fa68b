package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchhub/internal/core/calendar"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/policy"
)

// EventInput represents the event form
type EventInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        time.Time         `json:"date"`
	Location    string            `json:"location"`
	SectorID    string            `json:"sector_id"`
	Recurrence  domain.Recurrence `json:"recurrence"`
	// Notify announces the saved event to its audience
	Notify bool `json:"notify"`
}

// EventResult is returned by a successful save
type EventResult struct {
	Event        domain.Event         `json:"event"`
	View         domain.View          `json:"view"`
	Notification *NotificationReceipt `json:"notification,omitempty"`
}

// VisibleEvents returns the events the actor may see, ordered by date
func (s *Store) VisibleEvents(ctx context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleEventsLocked(ctx)
}

func (s *Store) visibleEventsLocked(ctx context.Context) ([]domain.Event, error) {
	if err := policy.Authorize(s.actor, policy.ActionViewOwn); err != nil {
		return nil, err
	}
	events, err := s.listEvents(ctx)
	if err != nil {
		return nil, err
	}
	return policy.VisibleEvents(events, s.actor), nil
}

// Event returns one event the actor may see
func (s *Store) Event(ctx context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessibleEvent(ctx, id, policy.ActionViewOwn)
}

// StartEditingEvent marks an event as the edit target and opens the edit view
func (s *Store) StartEditingEvent(ctx context.Context, id string) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.accessibleEvent(ctx, id, policy.ActionManageEvents)
	if err != nil {
		return SessionState{}, err
	}

	s.editingEventID = event.ID
	s.view = domain.ViewEditEvent
	return s.stateLocked(), nil
}

// AddEvent schedules a new event. A start time colliding with any existing
// event at minute granularity returns domain.ErrScheduleConflict and
// nothing is written.
func (s *Store) AddEvent(ctx context.Context, input EventInput) (*EventResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionManageEvents); err != nil {
		return nil, err
	}

	event := domain.Event{
		ID:        uuid.NewString(),
		CreatedBy: s.actor.ID,
	}
	if err := s.applyEventInput(&event, input); err != nil {
		return nil, err
	}
	if err := s.checkConflict(ctx, event.Date, ""); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, &event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		zap.String("actor_id", s.actor.ID),
		zap.String("event_id", event.ID),
		zap.String("sector_id", event.SectorID),
		zap.Time("date", event.Date))

	return s.finishSave(ctx, event, input.Notify)
}

// UpdateEvent replaces an event's fields, keeping its id and author. The
// event itself is excluded from the conflict check.
func (s *Store) UpdateEvent(ctx context.Context, id string, input EventInput) (*EventResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.accessibleEvent(ctx, id, policy.ActionManageEvents)
	if err != nil {
		return nil, err
	}

	event := domain.Event{
		ID:        existing.ID,
		CreatedBy: existing.CreatedBy,
	}
	if err := s.applyEventInput(&event, input); err != nil {
		return nil, err
	}
	if err := s.checkConflict(ctx, event.Date, event.ID); err != nil {
		return nil, err
	}

	if err := s.events.Update(ctx, &event); err != nil {
		return nil, err
	}

	s.logger.Info("event updated",
		zap.String("actor_id", s.actor.ID),
		zap.String("event_id", event.ID),
		zap.Time("date", event.Date))

	return s.finishSave(ctx, event, input.Notify)
}

// DeleteEvent removes an event and clears the edit target if it pointed at it
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accessibleEvent(ctx, id, policy.ActionManageEvents); err != nil {
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	if s.editingEventID == id {
		s.editingEventID = ""
		if s.view == domain.ViewEditEvent {
			s.view = domain.ViewDashboard
		}
	}

	s.logger.Info("event deleted", zap.String("actor_id", s.actor.ID), zap.String("event_id", id))
	return nil
}

// Notify announces an event to a sector's members, or to everyone for
// "global".
func (s *Store) Notify(ctx context.Context, sectorID, eventTitle string) (*NotificationReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionNotify); err != nil {
		return nil, err
	}
	if !domain.ValidEventSector(sectorID) {
		return nil, fmt.Errorf("sector %q: %w", sectorID, domain.ErrInvalidInput)
	}
	return s.notifyLocked(ctx, sectorID, eventTitle)
}

func (s *Store) notifyLocked(ctx context.Context, sectorID, eventTitle string) (*NotificationReceipt, error) {
	users, err := s.listUsers(ctx)
	if err != nil {
		return nil, err
	}

	return s.notifier.Notify(ctx, Notice{
		SectorID:   sectorID,
		SectorName: domain.SectorName(sectorID),
		EventTitle: eventTitle,
		Recipients: len(policy.Recipients(users, sectorID)),
	})
}

// finishSave navigates back to the dashboard and optionally announces the
// event. A failed announcement does not undo the save.
func (s *Store) finishSave(ctx context.Context, event domain.Event, notify bool) (*EventResult, error) {
	s.view = domain.ViewDashboard
	s.editingEventID = ""

	result := &EventResult{Event: event, View: s.view}
	if notify {
		receipt, err := s.notifyLocked(ctx, event.SectorID, event.Title)
		if err != nil {
			s.logger.Warn("notification failed", zap.String("event_id", event.ID), zap.Error(err))
		} else {
			result.Notification = receipt
		}
	}
	return result, nil
}

// accessibleEvent loads an event the actor may see after checking action
func (s *Store) accessibleEvent(ctx context.Context, id string, action policy.Action) (*domain.Event, error) {
	if err := policy.Authorize(s.actor, action); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessEvent(s.actor, event) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *Store) applyEventInput(e *domain.Event, input EventInput) error {
	e.Title = strings.TrimSpace(input.Title)
	e.Description = strings.TrimSpace(input.Description)
	e.Location = strings.TrimSpace(input.Location)
	e.SectorID = strings.TrimSpace(input.SectorID)
	e.Date = input.Date
	e.Recurrence = input.Recurrence

	switch {
	case e.Title == "":
		return fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	case e.Description == "":
		return fmt.Errorf("description is required: %w", domain.ErrInvalidInput)
	case e.Location == "":
		return fmt.Errorf("location is required: %w", domain.ErrInvalidInput)
	case e.Date.IsZero():
		return fmt.Errorf("date is required: %w", domain.ErrInvalidInput)
	}

	if e.SectorID == "" {
		e.SectorID = domain.GlobalSectorID
	}
	if !domain.ValidEventSector(e.SectorID) {
		return fmt.Errorf("sector %q: %w", e.SectorID, domain.ErrInvalidInput)
	}
	if !policy.CanTargetSector(s.actor, e.SectorID) {
		return domain.ErrForbidden
	}

	if e.Recurrence == "" {
		e.Recurrence = domain.RecurrenceNone
	}
	if !e.Recurrence.Valid() {
		return fmt.Errorf("recurrence %q: %w", e.Recurrence, domain.ErrInvalidInput)
	}
	return nil
}

func (s *Store) checkConflict(ctx context.Context, date time.Time, excludingID string) error {
	events, err := s.listEvents(ctx)
	if err != nil {
		return err
	}
	if other, ok := calendar.FindConflict(events, date, excludingID); ok {
		s.logger.Info("schedule conflict",
			zap.String("candidate", calendar.SlotKey(date).Format(time.RFC3339)),
			zap.String("conflicting_event_id", other.ID))
		return domain.ErrScheduleConflict
	}
	return nil
}
