package handlers

import (
	"time"

	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/core/calendar"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard, birthday and calendar endpoints
type DashboardHandler struct{}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// GetDashboard returns the home screen
// @Summary Dashboard
// @Description Stats, next event, pending members (leaders) and the merged feed
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param events query bool false "Include events in the feed" default(true)
// @Param birthdays query bool false "Include birthdays in the feed" default(true)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	data, err := middleware.StoreFrom(c).Dashboard(c.Context(), services.DashboardOptions{
		ShowEvents:    c.QueryBool("events", true),
		ShowBirthdays: c.QueryBool("birthdays", true),
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// GetBirthdays lists upcoming birthdays
// @Summary Birthdays
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /birthdays [get]
func (h *DashboardHandler) GetBirthdays(c *fiber.Ctx) error {
	entries, err := middleware.StoreFrom(c).Birthdays(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Birthdays retrieved successfully", fiber.Map{"birthdays": entries})
}

// BirthdayMessage drafts a greeting for a member
// @Summary Generate birthday message
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /birthdays/{id}/message [post]
func (h *DashboardHandler) BirthdayMessage(c *fiber.Ctx) error {
	text, err := middleware.StoreFrom(c).GenerateBirthdayMessage(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Message generated", text)
}

// GetCalendar returns a month grid
// @Summary Calendar month
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year (defaults to the current one)"
// @Param month query int false "Month 1-12 (defaults to the current one)"
// @Param shift query int false "Months to move from year/month"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /calendar [get]
func (h *DashboardHandler) GetCalendar(c *fiber.Ctx) error {
	store := middleware.StoreFrom(c)
	today := store.Today()

	year := c.QueryInt("year", today.Year())
	month := time.Month(c.QueryInt("month", int(today.Month())))
	if shift := c.QueryInt("shift", 0); shift != 0 && month >= time.January && month <= time.December {
		year, month = calendar.Shift(year, month, shift)
	}

	grid, err := store.CalendarMonth(c.Context(), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Calendar retrieved successfully", grid)
}

// ExportICS downloads the visible events as iCalendar
// @Summary Export calendar
// @Tags Calendar
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string
// @Router /calendar.ics [get]
func (h *DashboardHandler) ExportICS(c *fiber.Ctx) error {
	doc, err := middleware.StoreFrom(c).ExportICS(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="peniel.ics"`)
	return c.SendString(doc)
}
