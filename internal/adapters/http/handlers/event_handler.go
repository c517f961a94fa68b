package handlers

import (
	"fmt"
	"strings"
	"time"

	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Form layout for separate date and time fields
const eventFormLayout = "2006-01-02 15:04"

// EventHandler handles event endpoints
type EventHandler struct {
	loc *time.Location
}

// NewEventHandler creates a new event handler. Form dates are read in loc.
func NewEventHandler(loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.Local
	}
	return &EventHandler{loc: loc}
}

// EventRequest represents create/update event request body.
// Either Date is RFC3339, or Date is YYYY-MM-DD and Time is HH:MM.
type EventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Location    string            `json:"location"`
	SectorID    string            `json:"sector_id"`
	Recurrence  domain.Recurrence `json:"recurrence"`
	Notify      *bool             `json:"notify"`
}

// NotifyRequest represents notification request body
type NotifyRequest struct {
	SectorID string `json:"sector_id"`
	Title    string `json:"title"`
}

// GenerateDescriptionRequest represents AI description request body
type GenerateDescriptionRequest struct {
	Title    string `json:"title"`
	SectorID string `json:"sector_id"`
}

func (h *EventHandler) toInput(req EventRequest) (services.EventInput, error) {
	date, err := h.parseDate(req.Date, req.Time)
	if err != nil {
		return services.EventInput{}, err
	}

	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}

	return services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		SectorID:    req.SectorID,
		Recurrence:  req.Recurrence,
		Notify:      notify,
	}, nil
}

func (h *EventHandler) parseDate(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		// left to the store, which reports the missing date
		return time.Time{}, nil
	}
	if clock == "" {
		t, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation(eventFormLayout, date+" "+clock, h.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time %q %q", date, clock)
	}
	return t, nil
}

// List returns the events visible to the user
// @Summary List events
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := middleware.StoreFrom(c).VisibleEvents(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Events retrieved successfully", fiber.Map{"events": events})
}

// Get returns one visible event
// @Summary Get event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	event, err := middleware.StoreFrom(c).Event(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Event retrieved successfully", fiber.Map{"event": event})
}

// Create schedules a new event
// @Summary Create event
// @Description Rejects a second event at the same minute
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}
	input, err := h.toInput(req)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := middleware.StoreFrom(c).AddEvent(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Event created successfully", result)
}

// Update replaces an event's fields
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}
	input, err := h.toInput(req)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := middleware.StoreFrom(c).UpdateEvent(c.Context(), c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Event updated successfully", result)
}

// Delete removes an event
// @Summary Delete event
// @Tags Events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	if err := middleware.StoreFrom(c).DeleteEvent(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Event deleted successfully", nil)
}

// StartEditing opens the edit form for an event
// @Summary Edit event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /events/{id}/edit [post]
func (h *EventHandler) StartEditing(c *fiber.Ctx) error {
	state, err := middleware.StoreFrom(c).StartEditingEvent(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Editing event", fiber.Map{"state": state})
}

// Notify announces an event to a sector
// @Summary Send notification
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NotifyRequest true "Notification target"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notifications [post]
func (h *EventHandler) Notify(c *fiber.Ctx) error {
	var req NotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	receipt, err := middleware.StoreFrom(c).Notify(c.Context(), req.SectorID, req.Title)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Notification sent", fiber.Map{"notification": receipt})
}

// GenerateDescription drafts an event description
// @Summary Generate event description
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateDescriptionRequest true "Event title and sector"
// @Success 200 {object} response.Response
// @Router /events/generate-description [post]
func (h *EventHandler) GenerateDescription(c *fiber.Ctx) error {
	var req GenerateDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	text, err := middleware.StoreFrom(c).GenerateEventDescription(c.Context(), req.Title, req.SectorID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Description generated", text)
}
