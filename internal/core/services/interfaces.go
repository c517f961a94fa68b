package services

import (
	"context"
)

// TextGenerator produces AI texts. Implementations never fail; they return
// a fallback string instead.
type TextGenerator interface {
	GenerateEventDescription(ctx context.Context, title, sectorName string) string
	GenerateBirthdayMessage(ctx context.Context, name string) string
}

// Notifier delivers an event announcement to a sector's audience
type Notifier interface {
	Notify(ctx context.Context, notice Notice) (*NotificationReceipt, error)
}

// Notice describes an announcement handed to a Notifier
type Notice struct {
	SectorID   string
	SectorName string
	EventTitle string
	Recipients int
}

// NotificationReceipt is the acknowledgment surfaced to the user
type NotificationReceipt struct {
	Recipients int    `json:"recipients"`
	Message    string `json:"message"`
}

// staticGenerator is the TextGenerator used when none is configured
type staticGenerator struct{}

func (staticGenerator) GenerateEventDescription(_ context.Context, title, _ string) string {
	return "Participe de " + title + "."
}

func (staticGenerator) GenerateBirthdayMessage(_ context.Context, _ string) string {
	return "Parabéns! Deus te abençoe."
}
