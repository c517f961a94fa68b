package handlers

import (
	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles login, registration and logout within a session
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email string `json:"email"`
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Gender    domain.Gender `json:"gender"`
	Role      domain.Role   `json:"role"`
	BirthDate domain.Date   `json:"birth_date"`
}

// Login handles login by email
// @Summary Login
// @Description Log in by e-mail; matching ignores case
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LoginRequest true "Login data"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	state, err := middleware.StoreFrom(c).Login(c.Context(), req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Login successful", fiber.Map{"state": state})
}

// Register handles member self-registration
// @Summary Register
// @Description Create a pending member and log in
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	state, err := middleware.StoreFrom(c).Register(c.Context(), services.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Role:      req.Role,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Registration successful", fiber.Map{"state": state})
}

// Logout handles logout
// @Summary Logout
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	state := middleware.StoreFrom(c).Logout()
	return response.Success(c, "Logout successful", fiber.Map{"state": state})
}
