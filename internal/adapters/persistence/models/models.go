package models

import (
	"time"

	"gorm.io/gorm"

	"churchhub/internal/core/domain"
)

// ============================================================
// Members & Events Tables
// ============================================================

// User represents users table. Seq keeps insertion order, which the
// birthday list relies on for ties.
type User struct {
	Seq       uint      `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"uniqueIndex;size:64;not null"`
	Name      string    `gorm:"size:150;not null"`
	Email     string    `gorm:"uniqueIndex;size:150;not null"`
	Phone     string    `gorm:"size:30"`
	Gender    string    `gorm:"size:1"`
	Role      string    `gorm:"size:20;default:'MEMBER'"`
	SectorIDs []string  `gorm:"serializer:json;type:text"`
	BirthDate string    `gorm:"size:10"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the row into a domain user
func (u *User) ToDomain() domain.User {
	birth, _ := domain.ParseDate(u.BirthDate)
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Gender:    domain.Gender(u.Gender),
		Role:      domain.Role(u.Role),
		SectorIDs: append([]string{}, u.SectorIDs...),
		BirthDate: birth,
	}
}

// UserFromDomain builds a row from a domain user
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Gender:    string(u.Gender),
		Role:      string(u.Role),
		SectorIDs: append([]string{}, u.SectorIDs...),
		BirthDate: u.BirthDate.String(),
	}
}

// Event represents events table
type Event struct {
	Seq         uint      `gorm:"primaryKey;autoIncrement"`
	ID          string    `gorm:"uniqueIndex;size:64;not null"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"index;not null"`
	Location    string    `gorm:"size:200"`
	SectorID    string    `gorm:"index;size:20;not null"`
	CreatedBy   string    `gorm:"size:64"`
	Recurrence  string    `gorm:"size:20;default:'NONE'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

// ToDomain converts the row into a domain event
func (e *Event) ToDomain() domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		SectorID:    e.SectorID,
		CreatedBy:   e.CreatedBy,
		Recurrence:  domain.Recurrence(e.Recurrence),
	}
}

// EventFromDomain builds a row from a domain event
func EventFromDomain(e *domain.Event) *Event {
	return &Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		SectorID:    e.SectorID,
		CreatedBy:   e.CreatedBy,
		Recurrence:  string(e.Recurrence),
	}
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
	)
}
