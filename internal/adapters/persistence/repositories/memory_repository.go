package repositories

import (
	"context"
	"strings"

	"churchhub/internal/core/domain"
)

// memoryUserRepository keeps users in a slice owned by one session store.
// The owning store serializes access, so there is no locking here.
type memoryUserRepository struct {
	users []domain.User
}

// NewMemoryUserRepository creates a user repository seeded with a copy of users
func NewMemoryUserRepository(users []domain.User) UserRepository {
	r := &memoryUserRepository{users: make([]domain.User, 0, len(users))}
	for _, u := range users {
		r.users = append(r.users, u.Clone())
	}
	return r
}

// List lists all users in insertion order
func (r *memoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

// GetByID gets a user by ID
func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := r.users[i].Clone()
	return &u, nil
}

// GetByEmail gets a user by email, ignoring case
func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			found := u.Clone()
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create appends a new user
func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.users = append(r.users, user.Clone())
	return nil
}

// Update replaces a user in place
func (r *memoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	i := r.indexOf(user.ID)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	r.users[i] = user.Clone()
	return nil
}

// Delete removes a user
func (r *memoryUserRepository) Delete(ctx context.Context, id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

func (r *memoryUserRepository) indexOf(id string) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

// memoryEventRepository keeps events in a slice owned by one session store
type memoryEventRepository struct {
	events []domain.Event
}

// NewMemoryEventRepository creates an event repository seeded with a copy of events
func NewMemoryEventRepository(events []domain.Event) EventRepository {
	return &memoryEventRepository{events: append([]domain.Event{}, events...)}
}

// List lists all events in insertion order
func (r *memoryEventRepository) List(ctx context.Context) ([]domain.Event, error) {
	return append([]domain.Event{}, r.events...), nil
}

// GetByID gets an event by ID
func (r *memoryEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrEventNotFound
	}
	e := r.events[i]
	return &e, nil
}

// Create appends a new event
func (r *memoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.events = append(r.events, *event)
	return nil
}

// Update replaces an event in place
func (r *memoryEventRepository) Update(ctx context.Context, event *domain.Event) error {
	i := r.indexOf(event.ID)
	if i < 0 {
		return domain.ErrEventNotFound
	}
	r.events[i] = *event
	return nil
}

// Delete removes an event
func (r *memoryEventRepository) Delete(ctx context.Context, id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrEventNotFound
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return nil
}

func (r *memoryEventRepository) indexOf(id string) int {
	for i := range r.events {
		if r.events[i].ID == id {
			return i
		}
	}
	return -1
}
