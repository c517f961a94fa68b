package repositories

import (
	"context"

	"churchhub/internal/core/domain"
)

// UserRepository defines user repository interface.
// List returns users in insertion order; lookups that miss return
// domain.ErrUserNotFound.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// EventRepository defines event repository interface.
// Lookups that miss return domain.ErrEventNotFound.
type EventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
}
