package handlers

import (
	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/pagination"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile and roster endpoints
type UserHandler struct{}

// NewUserHandler creates a new user handler
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// MemberRequest represents create/update member request body
type MemberRequest struct {
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Gender    domain.Gender `json:"gender"`
	Role      domain.Role   `json:"role"`
	SectorIDs []string      `json:"sector_ids"`
	BirthDate domain.Date   `json:"birth_date"`
}

func (r MemberRequest) toInput() services.UserInput {
	return services.UserInput{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Gender:    r.Gender,
		Role:      r.Role,
		SectorIDs: r.SectorIDs,
		BirthDate: r.BirthDate,
	}
}

// GetProfile returns the logged-in user
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	state := middleware.StoreFrom(c).State()
	if state.Actor == nil {
		return respondError(c, domain.ErrUnauthorized)
	}
	return response.Success(c, "Profile retrieved successfully", fiber.Map{"user": state.Actor})
}

// UpdateProfile updates the logged-in user's contact details
// @Summary Update own profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	user, err := middleware.StoreFrom(c).UpdateProfile(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Profile updated successfully", fiber.Map{"user": user})
}

// ListMembers lists the leader's roster
// @Summary List members
// @Description Leader's roster: own sectors plus every pending member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or e-mail"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /members [get]
func (h *UserHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	page, err := middleware.StoreFrom(c).Members(c.Context(), services.MemberQuery{
		Search: c.Query("search"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Paginated(c, "Members retrieved successfully", fiber.Map{"members": page.Members}, page.Meta)
}

// GetMember returns one roster member
// @Summary Get member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *UserHandler) GetMember(c *fiber.Ctx) error {
	member, err := middleware.StoreFrom(c).Member(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Member retrieved successfully", fiber.Map{"member": member})
}

// CreateMember adds a member
// @Summary Create member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *UserHandler) CreateMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	user, err := middleware.StoreFrom(c).AddUser(c.Context(), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Member created successfully", fiber.Map{"user": user})
}

// UpdateMember replaces a member's fields, including sector approval
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body MemberRequest true "Member data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *UserHandler) UpdateMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	user, err := middleware.StoreFrom(c).UpdateUser(c.Context(), c.Params("id"), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Member updated successfully", fiber.Map{"user": user})
}

// DeleteMember removes a member
// @Summary Delete member
// @Tags Members
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /members/{id} [delete]
func (h *UserHandler) DeleteMember(c *fiber.Ctx) error {
	if err := middleware.StoreFrom(c).DeleteUser(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Member deleted successfully", nil)
}
