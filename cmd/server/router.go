package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/vidoc/vidoc-api/internal/api"
	apiMiddleware "github.com/vidoc/vidoc-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	// Cross-origin policy for browser clients
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: app.config.CORS.AllowedMethods,
		AllowedHeaders: app.config.CORS.AllowedHeaders,
	}).Handler)

	videoHandler := api.NewVideoHandler(
		app.docService,
		app.logger.With("component", "video_handler"),
	)

	// Register routes
	r.Get("/", videoHandler.Root)
	r.Post("/upload-video", videoHandler.UploadVideo)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
