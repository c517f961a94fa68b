package handlers

import (
	"time"

	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/config"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/jwt"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler opens and closes sessions and drives navigation
type SessionHandler struct {
	sessions *services.SessionManager
	cfg      *config.Config
	log      *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionManager, cfg *config.Config, log *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, cfg: cfg, log: log}
}

// SetViewRequest represents set view request body
type SetViewRequest struct {
	View domain.View `json:"view"`
}

// Create opens a new session seeded with the demo data
// @Summary Create session
// @Tags Session
// @Produce json
// @Success 201 {object} response.Response
// @Router /sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	id, store, err := h.sessions.Create(c.Context())
	if err != nil {
		h.log.Error("failed to create session", zap.Error(err))
		return response.InternalServerError(c, "Failed to create session")
	}

	// No exp claim; the idle timeout is enforced by the session manager
	token, err := jwt.GenerateSessionToken(id, h.cfg.JWT.Secret, 0)
	if err != nil {
		_ = h.sessions.Delete(id)
		return response.InternalServerError(c, "Failed to sign session token")
	}

	h.setCookie(c, token)

	return response.Created(c, "Session created", fiber.Map{
		"session_id": id,
		"token":      token,
		"state":      store.State(),
	})
}

// Get returns the current session state
// @Summary Get session state
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	store := middleware.StoreFrom(c)
	return response.Success(c, "Session retrieved successfully", fiber.Map{
		"session_id": middleware.SessionIDFrom(c),
		"state":      store.State(),
	})
}

// Delete closes the session
// @Summary Delete session
// @Tags Session
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /session [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessions.Delete(middleware.SessionIDFrom(c)); err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return response.Success(c, "Session closed", nil)
}

// SetView changes the navigation target
// @Summary Navigate
// @Tags Session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetViewRequest true "Target view"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /session/view [put]
func (h *SessionHandler) SetView(c *fiber.Ctx) error {
	var req SetViewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	state, err := middleware.StoreFrom(c).SetView(req.View)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "View changed", fiber.Map{"state": state})
}

// setCookie sets a browser-session cookie; lifetime is governed by the
// server-side idle timeout.
func (h *SessionHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   h.cfg.IsProd(),
		SameSite: "Lax",
	})
}
