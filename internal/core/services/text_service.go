package services

import (
	"context"
	"fmt"
	"strings"

	"churchhub/internal/core/domain"
	"churchhub/internal/core/policy"
)

// GeneratedText is an AI answer shown to the user
type GeneratedText struct {
	Text string `json:"text"`
}

// GenerateEventDescription drafts an event description. The generator is
// called without holding the store lock; concurrent requests resolve
// independently and the caller keeps whichever answer arrives last.
func (s *Store) GenerateEventDescription(ctx context.Context, title, sectorID string) (*GeneratedText, error) {
	s.mu.Lock()
	err := policy.Authorize(s.actor, policy.ActionGenerateText)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}

	sectorName := domain.SectorName(sectorID)
	if sectorName == "" {
		sectorName = "Geral"
	}

	return &GeneratedText{Text: s.generator.GenerateEventDescription(ctx, title, sectorName)}, nil
}

// GenerateBirthdayMessage writes a greeting for a user, formatted as
// `Name: "message"`.
func (s *Store) GenerateBirthdayMessage(ctx context.Context, userID string) (*GeneratedText, error) {
	s.mu.Lock()
	err := policy.Authorize(s.actor, policy.ActionViewOwn)
	var name string
	if err == nil {
		var u *domain.User
		u, err = s.users.GetByID(ctx, userID)
		if err == nil {
			name = u.Name
		}
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	msg := s.generator.GenerateBirthdayMessage(ctx, name)
	return &GeneratedText{Text: fmt.Sprintf("%s: \"%s\"", name, msg)}, nil
}
