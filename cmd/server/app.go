package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vidoc/vidoc-api/internal/config"
	"github.com/vidoc/vidoc-api/internal/generation"
	"github.com/vidoc/vidoc-api/internal/platform/gemini"
	"github.com/vidoc/vidoc-api/internal/platform/logger"
	"github.com/vidoc/vidoc-api/internal/service/docgen"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Service interfaces
	generator  generation.Generator
	docService *docgen.Service
}

// initializeApp loads configuration, sets up logging, and builds the
// application. Returns the application or any initialization error.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName)

	return newApplication(cfg, appLogger)
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration and logger
// that must be established before application initialization.
func newApplication(cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: appLogger,
	}

	var err error
	app.generator, err = gemini.NewClient(
		appLogger.With("component", "gemini_client"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	appLogger.Info("Generator initialized successfully")

	app.docService, err = docgen.NewService(
		app.generator,
		appLogger.With("component", "docgen_service"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create documentation service: %w", err)
	}

	appLogger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
