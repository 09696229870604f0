package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/akarpov/walletsvc/internal/identity/adapter/http/handler"
	"github.com/akarpov/walletsvc/internal/infrastructure/auth"
	"github.com/akarpov/walletsvc/internal/middleware"
)

// RouterConfig holds dependencies for the identity router.
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	InternalHandler *handler.InternalHandler
	HealthHandler   *handler.HealthHandler
	JWTManager      *auth.JWTManager
	Logger          zerolog.Logger
}

// NewRouter creates the identity service HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Service-to-service surface, authenticated by signed assertions
	// rather than user tokens.
	r.Post("/internal/v1/validate", cfg.InternalHandler.Validate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTManager))

			r.Get("/", cfg.UserHandler.Get)
			r.Put("/", cfg.UserHandler.Update)
			r.Delete("/", cfg.UserHandler.Delete)
		})
	})

	return r
}
