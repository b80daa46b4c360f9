package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/junyi-hu/lunisolar-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(logger))
	r.Use(MetricsMiddleware(handlers.metrics))
	r.Use(CORSMiddleware())

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/convert", handlers.Convert)
		r.Get("/convert/{date}", handlers.ConvertDate)
		r.Get("/almanac/{year}/{month}", handlers.Almanac)
		r.Get("/events/new-moons", handlers.NewMoons)
		r.Get("/events/solar-terms", handlers.SolarTerms)

		// ======================================================================
		// Admin routes (API key only)
		// ======================================================================
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Post("/admin/precompute", handlers.Precompute)
		})
	})

	return r
}
