/**
 * @description
 * This file sets up the HTTP router for the subscription server using the go-chi/chi router.
 * It applies the shared middleware stack, registers the service routes every
 * profile serves, and mounts the analytics and subscription routes under the
 * API prefix when the full profile is selected.
 */
package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/flowlytix/subscription-service/internal/config"
	"github.com/flowlytix/subscription-service/internal/ratelimit"
)

// RouterOptions selects which routes are mounted and how they are guarded.
type RouterOptions struct {
	Profile        string
	APIPrefix      string
	AllowedOrigins []string
	// Limiter guards the API prefix. Nil disables rate limiting.
	Limiter ratelimit.Limiter
	Logger  *slog.Logger
	// TrustProxyHeaders takes the client address from X-Real-IP or
	// X-Forwarded-For. Only enable behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// NewRouter creates a new Chi router and registers the subscription server routes.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = h.logger
	}

	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	if opts.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)
	r.Get("/metrics", h.handleMetrics)
	r.Get("/", h.handleRoot)
	if !h.info.Production {
		r.Get("/openapi.json", h.handleOpenAPI)
	}

	if opts.Profile != config.ProfileMinimal {
		r.Route(apiPrefix(opts.APIPrefix), func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(rateLimit(opts.Limiter, logger))
			}

			r.Get("/analytics/dashboard", h.handleDashboardAnalytics)
			r.Get("/analytics/system-health", h.handleSystemHealth)
			r.Get("/subscriptions", h.handleListSubscriptions)
		})
	}

	return r
}

func apiPrefix(prefix string) string {
	if prefix == "" {
		return "/api/v1"
	}
	return prefix
}
