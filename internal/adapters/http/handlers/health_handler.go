package handlers

import (
	"churchhub/internal/config"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg      *config.Config
	sessions *services.SessionManager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, sessions *services.SessionManager) *HealthHandler {
	return &HealthHandler{cfg: cfg, sessions: sessions}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Tags Health
// @Produce json
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "Peniel Church Hub API v1.0 is running",
		"mode":    h.cfg.AppMode,
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and storage health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storage := "memory"
	if h.cfg.StoreDriver == config.StoreMySQL {
		storage = "healthy"
		if err := config.HealthCheck(); err != nil {
			storage = "unhealthy"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"storage":  storage,
			"sessions": h.sessions.Count(),
		},
	})
}

// Sectors lists the fixed sector reference data
// @Summary List sectors
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /sectors [get]
func (h *HealthHandler) Sectors(c *fiber.Ctx) error {
	return response.Success(c, "Sectors retrieved successfully", fiber.Map{
		"sectors": domain.Sectors,
		"global": domain.Sector{
			ID:   domain.GlobalSectorID,
			Name: domain.GlobalSectorName,
		},
	})
}
