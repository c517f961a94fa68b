package routes

import (
	"time"

	"churchhub/internal/adapters/http/handlers"
	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/config"
	"churchhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, sessions *services.SessionManager, log *zap.Logger) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, sessions)
	sessionHandler := handlers.NewSessionHandler(sessions, cfg, log)
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	eventHandler := handlers.NewEventHandler(cfg.Location())
	dashboardHandler := handlers.NewDashboardHandler()

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	apiV1 := app.Group("/api/v1")

	// Public routes. Registered before the session group so they end the chain.
	apiV1.Get("/sectors", middleware.CacheControl(time.Hour), healthHandler.Sectors)
	apiV1.Post("/sessions", sessionHandler.Create)

	protected := apiV1.Group("", middleware.SessionMiddleware(sessions, cfg.JWT.Secret), middleware.NoCacheHeaders())

	setupSessionRoutes(protected.Group("/session"), sessionHandler)
	setupAuthRoutes(protected.Group("/auth"), authHandler)
	setupProfileRoutes(protected.Group("/profile"), userHandler)
	setupEventRoutes(protected, eventHandler)
	setupDashboardRoutes(protected, dashboardHandler)
	setupMemberRoutes(protected.Group("/members"), userHandler)
}

// setupSessionRoutes configures session state and navigation
func setupSessionRoutes(router fiber.Router, handler *handlers.SessionHandler) {
	router.Get("/", handler.Get)
	router.Delete("/", handler.Delete)
	router.Put("/view", handler.SetView)
}

// setupAuthRoutes configures login inside an open session
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/logout", handler.Logout)
}

// setupProfileRoutes configures profile routes
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
}

// setupEventRoutes configures events and notifications
func setupEventRoutes(router fiber.Router, handler *handlers.EventHandler) {
	events := router.Group("/events")
	events.Get("/", handler.List)
	events.Post("/", handler.Create)
	events.Post("/generate-description", middleware.AIRateLimiter(), handler.GenerateDescription)
	events.Get("/:id", handler.Get)
	events.Put("/:id", handler.Update)
	events.Delete("/:id", handler.Delete)
	events.Post("/:id/edit", handler.StartEditing)

	router.Post("/notifications", handler.Notify)
}

// setupDashboardRoutes configures dashboard, birthdays and calendar
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/dashboard", handler.GetDashboard)
	router.Get("/birthdays", handler.GetBirthdays)
	router.Post("/birthdays/:id/message", middleware.AIRateLimiter(), handler.BirthdayMessage)
	router.Get("/calendar", handler.GetCalendar)
	router.Get("/calendar.ics", handler.ExportICS)
}

// setupMemberRoutes configures the leader's roster
func setupMemberRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListMembers)
	router.Post("/", handler.CreateMember)
	router.Get("/:id", handler.GetMember)
	router.Put("/:id", handler.UpdateMember)
	router.Delete("/:id", handler.DeleteMember)
}
