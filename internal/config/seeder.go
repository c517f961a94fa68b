package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData is the demo dataset every session starts from
type SeedData struct {
	Users  []SeedUser  `yaml:"users"`
	Events []SeedEvent `yaml:"events"`
}

// SeedUser is a user row of the seed file
type SeedUser struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Email     string   `yaml:"email"`
	Phone     string   `yaml:"phone"`
	Gender    string   `yaml:"gender"`
	Role      string   `yaml:"role"`
	SectorIDs []string `yaml:"sector_ids"`
	BirthDate string   `yaml:"birth_date"`
}

// SeedEvent is an event row of the seed file. DayOffset places the event
// relative to the seeding time.
type SeedEvent struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	DayOffset   int    `yaml:"day_offset"`
	Location    string `yaml:"location"`
	SectorID    string `yaml:"sector_id"`
	CreatedBy   string `yaml:"created_by"`
	Recurrence  string `yaml:"recurrence"`
}

// LoadSeed reads the seed file at path, or the embedded default when path
// is empty.
func LoadSeed(path string) (*SeedData, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &data, nil
}

// DomainUsers converts the seed users to domain users
func (d *SeedData) DomainUsers() ([]domain.User, error) {
	out := make([]domain.User, 0, len(d.Users))
	for _, u := range d.Users {
		var birth domain.Date
		if u.BirthDate != "" {
			var err error
			if birth, err = domain.ParseDate(u.BirthDate); err != nil {
				return nil, fmt.Errorf("seed user %s: %w", u.ID, err)
			}
		}

		user := domain.User{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			Gender:    domain.Gender(u.Gender),
			Role:      domain.Role(u.Role),
			SectorIDs: append([]string{}, u.SectorIDs...),
			BirthDate: birth,
		}
		if !user.Role.Valid() || !user.Gender.Valid() {
			return nil, fmt.Errorf("seed user %s: %w", u.ID, domain.ErrInvalidInput)
		}
		out = append(out, user)
	}
	return out, nil
}

// DomainEvents converts the seed events to domain events dated from now
func (d *SeedData) DomainEvents(now time.Time) ([]domain.Event, error) {
	base := now.Truncate(time.Minute)

	out := make([]domain.Event, 0, len(d.Events))
	for _, e := range d.Events {
		event := domain.Event{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Date:        base.AddDate(0, 0, e.DayOffset),
			Location:    e.Location,
			SectorID:    e.SectorID,
			CreatedBy:   e.CreatedBy,
			Recurrence:  domain.Recurrence(e.Recurrence),
		}
		if event.Recurrence == "" {
			event.Recurrence = domain.RecurrenceNone
		}
		if !event.Recurrence.Valid() || !domain.ValidEventSector(event.SectorID) {
			return nil, fmt.Errorf("seed event %s: %w", e.ID, domain.ErrInvalidInput)
		}
		out = append(out, event)
	}
	return out, nil
}

// Seeder handles database seeding
type Seeder struct {
	db   *gorm.DB
	data *SeedData
	log  *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, data *SeedData, log *zap.Logger) *Seeder {
	return &Seeder{db: db, data: data, log: log}
}

// Run loads the seed data into an empty database. A database that already
// holds users is left untouched.
func (s *Seeder) Run(now time.Time) error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("database already seeded", zap.Int64("users", count))
		return nil
	}

	users, err := s.data.DomainUsers()
	if err != nil {
		return err
	}
	events, err := s.data.DomainEvents(now)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Create(models.UserFromDomain(&users[i])).Error; err != nil {
				return err
			}
		}
		for i := range events {
			if err := tx.Create(models.EventFromDomain(&events[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	s.log.Info("database seeded", zap.Int("users", len(users)), zap.Int("events", len(events)))
	return nil
}
