package handlers

import (
	"errors"
	"strings"

	"churchhub/internal/core/domain"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// User-facing messages
const (
	MsgLoginFailed      = "Usuário não encontrado. Verifique o e-mail ou faça seu cadastro."
	MsgScheduleConflict = "Já existe um evento cadastrado nesta data e horário! Por favor, escolha outro horário."
	MsgForbidden        = "Acesso negado. Apenas líderes podem realizar esta ação."
	MsgUnauthorized     = "Faça login para continuar."
	MsgCannotDeleteSelf = "Você não pode excluir sua própria conta."
	MsgLastLeader       = "A igreja precisa de pelo menos um líder."
	MsgUserNotFound     = "Membro não encontrado."
	MsgEventNotFound    = "Evento não encontrado."
	MsgSessionNotFound  = "Sessão expirada ou inexistente."
	MsgEmailTaken       = "Este e-mail já está cadastrado."
	MsgInvalidBody      = "Invalid request body"
)

// respondError maps store errors onto the response envelope
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, MsgLoginFailed)
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, MsgUnauthorized)
	case errors.Is(err, domain.ErrCannotDeleteSelf):
		return response.Forbidden(c, MsgCannotDeleteSelf)
	case errors.Is(err, domain.ErrLastLeader):
		return response.Forbidden(c, MsgLastLeader)
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, MsgForbidden)
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, MsgUserNotFound)
	case errors.Is(err, domain.ErrEventNotFound):
		return response.NotFound(c, MsgEventNotFound)
	case errors.Is(err, domain.ErrSessionNotFound):
		return response.NotFound(c, MsgSessionNotFound)
	case errors.Is(err, domain.ErrScheduleConflict):
		return response.Conflict(c, MsgScheduleConflict)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return response.Conflict(c, MsgEmailTaken)
	case errors.Is(err, domain.ErrInvalidInput):
		// "title is required: invalid input" -> "title is required"
		msg := strings.TrimSuffix(err.Error(), ": "+domain.ErrInvalidInput.Error())
		return response.BadRequest(c, msg)
	default:
		return err
	}
}
