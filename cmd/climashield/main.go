package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/climashield/climashield/internal/api/http"
	"github.com/climashield/climashield/internal/climate"
	"github.com/climashield/climashield/internal/config"
	"github.com/climashield/climashield/internal/insight"
	"github.com/climashield/climashield/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Insight generation with resilience (timeout + retry + circuit breaker)
	// and the local templated fallback.
	var provider insight.Provider
	if cfg.AnthropicAPIKey != "" {
		provider = insight.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.InsightModel, cfg.InsightTokens)
	} else {
		log.Println("INFO: ANTHROPIC_API_KEY not set; insights served from local template")
	}
	insights := insight.NewService(provider, cfg.InsightTimeout)

	// Core service running the load -> predict -> score -> insight pipeline.
	service := climate.NewService(
		cfg.HistoryCSV, cfg.SoilCSV,
		cfg.ForecastFrom, cfg.ForecastTo,
		cfg.Risk, insights,
	)

	// Scheduler that keeps the predictions export file fresh.
	sched := scheduler.New(service, cfg.PredictionsCSV, cfg.ExportInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "climashield",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "climashield",
		})
	})

	// Dashboard and API routes.
	httpapi.RegisterDashboard(app)
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
