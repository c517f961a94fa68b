package repositories

import (
	"context"
	"errors"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"

	"gorm.io/gorm"
)

// eventRepository implements EventRepository on top of gorm
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// List lists all events in insertion order
func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	var rows []*models.Event
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = row.ToDomain()
	}
	return events, nil
}

// GetByID gets an event by ID
func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var row models.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	e := row.ToDomain()
	return &e, nil
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(models.EventFromDomain(event)).Error
}

// Update updates an event
func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", event.ID).
		Select("title", "description", "date", "location", "sector_id", "created_by", "recurrence").
		Updates(models.EventFromDomain(event))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Delete deletes an event
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
