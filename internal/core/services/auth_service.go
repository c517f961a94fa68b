package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchhub/internal/core/domain"
)

// RegisterInput represents registration input
type RegisterInput struct {
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Gender    domain.Gender `json:"gender"`
	Role      domain.Role   `json:"role"`
	BirthDate domain.Date   `json:"birth_date"`
}

// Login sets the actor to the user whose email matches, ignoring case, and
// navigates to the dashboard. Lookup runs against every user, not the
// roster. Any miss returns domain.ErrInvalidCredentials and leaves the
// session untouched.
func (s *Store) Login(ctx context.Context, email string) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	if email == "" {
		return SessionState{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return SessionState{}, domain.ErrInvalidCredentials
		}
		return SessionState{}, err
	}

	s.actor = user
	s.view = domain.ViewDashboard
	s.editingEventID = ""

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.stateLocked(), nil
}

// Logout clears the actor and the edit target and returns to the login view
func (s *Store) Logout() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.actor != nil {
		s.logger.Info("user logged out", zap.String("user_id", s.actor.ID))
	}
	s.actor = nil
	s.editingEventID = ""
	s.view = domain.ViewLogin
	return s.stateLocked()
}

// Register creates a pending user with the requested role and logs them in.
// Sector placement is left to a leader.
func (s *Store) Register(ctx context.Context, input RegisterInput) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := domain.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Gender:    input.Gender,
		Role:      input.Role,
		SectorIDs: []string{},
		BirthDate: input.BirthDate,
	}
	if user.Role == "" {
		user.Role = domain.RoleMember
	}
	if err := s.prepareUser(ctx, &user, ""); err != nil {
		return SessionState{}, err
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return SessionState{}, fmt.Errorf("create user: %w", err)
	}

	s.actor = &user
	s.view = domain.ViewDashboard
	s.editingEventID = ""

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.stateLocked(), nil
}

// prepareUser normalizes and validates user fields and checks email
// uniqueness against every user except selfID.
func (s *Store) prepareUser(ctx context.Context, u *domain.User, selfID string) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)

	if u.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if u.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("email %q: %w", u.Email, domain.ErrInvalidInput)
	}
	if u.Gender == "" {
		u.Gender = domain.GenderMale
	}
	if !u.Gender.Valid() {
		return fmt.Errorf("gender %q: %w", u.Gender, domain.ErrInvalidInput)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("role %q: %w", u.Role, domain.ErrInvalidInput)
	}

	sectors, err := normalizeSectors(u.SectorIDs)
	if err != nil {
		return err
	}
	u.SectorIDs = sectors

	existing, err := s.users.GetByEmail(ctx, u.Email)
	switch {
	case err == nil && existing.ID != selfID:
		return domain.ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return err
	}
	return nil
}

// normalizeSectors drops duplicates and rejects unknown or global ids
func normalizeSectors(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := domain.FindSector(id); !ok {
			return nil, fmt.Errorf("sector %q: %w", id, domain.ErrInvalidInput)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
