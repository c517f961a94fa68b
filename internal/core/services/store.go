package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/policy"
)

// Store is the application state of one session: the acting user, the user
// and event collections, the navigation target and the event under edit.
//
// Every operation takes the store's lock, so each mutation is applied as a
// whole or not at all. AI text generation is the one exception: it snapshots
// what it needs under the lock and calls the generator without holding it.
type Store struct {
	mu sync.Mutex

	users     repositories.UserRepository
	events    repositories.EventRepository
	notifier  Notifier
	generator TextGenerator
	now       func() time.Time
	loc       *time.Location
	logger    *zap.Logger

	actor          *domain.User
	view           domain.View
	editingEventID string
}

// StoreDeps holds dependencies for a Store
type StoreDeps struct {
	Users  repositories.UserRepository
	Events repositories.EventRepository
	// Notifier defaults to a log notifier
	Notifier Notifier
	// Generator defaults to fixed texts
	Generator TextGenerator
	// Now defaults to time.Now
	Now func() time.Time
	// Location is the display time zone; defaults to time.Local
	Location *time.Location
	Logger   *zap.Logger
}

// NewStore creates a logged-out store showing the login view
func NewStore(deps StoreDeps) *Store {
	s := &Store{
		users:     deps.Users,
		events:    deps.Events,
		notifier:  deps.Notifier,
		generator: deps.Generator,
		now:       deps.Now,
		loc:       deps.Location,
		logger:    deps.Logger,
		view:      domain.ViewLogin,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(s.logger)
	}
	if s.generator == nil {
		s.generator = staticGenerator{}
	}
	return s
}

// SessionState is a snapshot of the navigation state
type SessionState struct {
	Actor          *domain.User `json:"actor"`
	View           domain.View  `json:"view"`
	EditingEventID string       `json:"editing_event_id,omitempty"`
}

// State returns a copy of the current session state
func (s *Store) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() SessionState {
	st := SessionState{View: s.view, EditingEventID: s.editingEventID}
	if s.actor != nil {
		a := s.actor.Clone()
		st.Actor = &a
	}
	return st
}

// SetView changes the navigation target. Views other than LOGIN and
// REGISTER need an actor; MEMBERS and CREATE_EVENT need a leader.
// EDIT_EVENT is only reachable through StartEditingEvent.
func (s *Store) SetView(view domain.View) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !view.Valid() || view == domain.ViewEditEvent {
		return SessionState{}, fmt.Errorf("view %q: %w", view, domain.ErrInvalidInput)
	}

	if !view.Public() {
		action := policy.ActionViewOwn
		switch view {
		case domain.ViewMembers:
			action = policy.ActionViewRoster
		case domain.ViewCreateEvent:
			action = policy.ActionManageEvents
		}
		if err := policy.Authorize(s.actor, action); err != nil {
			return SessionState{}, err
		}
	}

	s.view = view
	s.editingEventID = ""
	return s.stateLocked(), nil
}

func (s *Store) today() time.Time {
	return s.now().In(s.loc)
}

func (s *Store) listUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) listEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
