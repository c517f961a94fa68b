// Package ai generates short pt-BR texts for events and birthdays.
//
// The Generator never fails its caller: missing credentials, provider errors
// and empty answers each degrade to a fixed fallback string.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Provider sends one prompt to a text-generation backend
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Fallback texts
const (
	FallbackNoCredentials     = "Erro: Chave de API não configurada. Por favor, configure a chave do provedor de IA."
	FallbackEmptyDescription  = "Não foi possível gerar a descrição."
	FallbackDescriptionFailed = "Erro ao contatar a IA. Tente novamente mais tarde."
	FallbackBirthdayDefault   = "Parabéns! Deus te abençoe."
)

const eventDescriptionPrompt = `Você é um assistente criativo de liderança de igreja.
Crie uma descrição atraente, curta e inspiradora para um evento da igreja.

Título do Evento: "%s"
Setor/Ministério: "%s"

A descrição deve ter no máximo 3 frases e incluir um emoji relevante.`

const birthdayPrompt = "Escreva uma mensagem curta de aniversário cristã e encorajadora para %s. Máximo 1 frase."

// Generator wraps a Provider with the fallback contract
type Generator struct {
	provider Provider
	logger   *zap.Logger
}

// NewGenerator creates a generator. A nil provider means no credentials are
// configured and every call returns its fallback.
func NewGenerator(provider Provider, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger.Named("ai"),
	}
}

// Enabled returns true when a provider is configured
func (g *Generator) Enabled() bool {
	return g.provider != nil
}

// GenerateEventDescription writes a short description for an event
func (g *Generator) GenerateEventDescription(ctx context.Context, title, sectorName string) string {
	if g.provider == nil {
		g.logger.Warn("AI provider not configured")
		return FallbackNoCredentials
	}

	text, err := g.complete(ctx, fmt.Sprintf(eventDescriptionPrompt, title, sectorName))
	if err != nil {
		return FallbackDescriptionFailed
	}
	if text == "" {
		return FallbackEmptyDescription
	}
	return text
}

// GenerateBirthdayMessage writes a one-sentence birthday greeting
func (g *Generator) GenerateBirthdayMessage(ctx context.Context, name string) string {
	if g.provider == nil {
		return FallbackBirthdayDefault
	}

	text, err := g.complete(ctx, fmt.Sprintf(birthdayPrompt, name))
	if err != nil {
		return fmt.Sprintf("Parabéns %s! Deus te abençoe.", name)
	}
	if text == "" {
		return fmt.Sprintf("Parabéns %s!", name)
	}
	return text
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		g.logger.Error("AI request failed",
			zap.String("provider", g.provider.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}

	g.logger.Debug("AI request completed",
		zap.String("provider", g.provider.Name()),
		zap.Int("prompt_len", len(prompt)),
		zap.Duration("elapsed", time.Since(start)))
	return strings.TrimSpace(text), nil
}
