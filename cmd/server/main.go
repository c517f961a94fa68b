package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"churchhub/internal/adapters/ai"
	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/adapters/http/routes"
	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/config"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title Peniel Church Hub API
// @version 1.0
// @description Sessions, events, birthdays and the member roster of Peniel Church

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	seed, err := config.LoadSeed(cfg.SeedFile)
	if err != nil {
		zlog.Fatal("failed to load seed data", zap.Error(err))
	}

	generator, err := ai.NewFromConfig(ai.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		BaseURL:  cfg.AI.BaseURL,
	}, zlog)
	if err != nil {
		zlog.Fatal("failed to configure AI provider", zap.Error(err))
	}

	deps := services.StoreDeps{
		Notifier:  services.NewLogNotifier(zlog),
		Generator: generator,
		Location:  cfg.Location(),
		Logger:    zlog,
	}

	factory, err := newStoreFactory(cfg, seed, deps, zlog)
	if err != nil {
		zlog.Fatal("failed to prepare storage", zap.Error(err))
	}
	if cfg.StoreDriver == config.StoreMySQL {
		defer config.CloseDatabase()
	}

	sessions := services.NewSessionManager(factory, cfg.SessionTTL(), zlog)

	// Sweep idle sessions
	cronService, err := services.NewCronService(sessions, cfg.Session.SweepSchedule, zlog)
	if err != nil {
		zlog.Fatal("failed to schedule session sweep", zap.Error(err))
	}
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Peniel Church Hub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, zlog)

	// Setup routes
	routes.Setup(app, cfg, sessions, zlog)

	// Graceful shutdown
	go gracefulShutdown(app, zlog)

	// Start server
	zlog.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.AppMode),
		zap.String("store", cfg.StoreDriver),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

// newStoreFactory builds the per-session store constructor. Memory mode
// gives every session its own copy of the seed; MySQL mode shares one
// database, seeded once.
func newStoreFactory(cfg *config.Config, seed *config.SeedData, deps services.StoreDeps, zlog *zap.Logger) (services.StoreFactory, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := config.ConnectDatabase(cfg, zlog)
		if err != nil {
			return nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			return nil, err
		}
		zlog.Info("database migration completed")

		if err := config.NewSeeder(db, seed, zlog).Run(time.Now()); err != nil {
			return nil, err
		}

		deps.Users = repositories.NewUserRepository(db)
		deps.Events = repositories.NewEventRepository(db)
		return func(ctx context.Context) (*services.Store, error) {
			return services.NewStore(deps), nil
		}, nil

	default:
		return func(ctx context.Context) (*services.Store, error) {
			users, err := seed.DomainUsers()
			if err != nil {
				return nil, err
			}
			events, err := seed.DomainEvents(time.Now().In(cfg.Location()))
			if err != nil {
				return nil, err
			}

			d := deps
			d.Users = repositories.NewMemoryUserRepository(users)
			d.Events = repositories.NewMemoryEventRepository(events)
			return services.NewStore(d), nil
		}, nil
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
	zlog.Info("server stopped gracefully")
}
