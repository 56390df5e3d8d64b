/**
 * @description
 * This file contains the HTTP handler functions for the subscription server.
 * Handlers parse incoming requests, call the service layer, and write the
 * JSON envelope back to the client.
 */
package api

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/flowlytix/subscription-service/internal/app"
)

const applicationSlug = "flowlytix-subscription-server"

//go:embed openapi.json
var openAPIDocument []byte

// ReadinessChecker reports the health of the backing resources.
type ReadinessChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

// ServiceInfo describes the running deployment on the service routes.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
	Production  bool
}

// Handler holds the application service and deployment details the handlers use.
type Handler struct {
	service   app.Service
	info      ServiceInfo
	readiness ReadinessChecker
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler creates a new Handler. A nil readiness checker reports ready.
func NewHandler(service app.Service, info ServiceInfo, readiness ReadinessChecker, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		info:      info,
		readiness: readiness,
		logger:    logger,
		now:       time.Now,
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, r, http.StatusOK, healthResponse{
		Status:      "healthy",
		Version:     h.info.Version,
		Environment: h.info.Environment,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
	})
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleReady pings every opened resource. Any failure answers 503.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks, healthy := map[string]string{}, true
	if h.readiness != nil {
		checks, healthy = h.readiness.Check(r.Context())
	}

	if !healthy {
		h.logger.WarnContext(r.Context(), "readiness check failed", "checks", checks)
		respondWithJSON(w, r, http.StatusServiceUnavailable, readinessResponse{Status: "unavailable", Checks: checks})
		return
	}
	respondWithJSON(w, r, http.StatusOK, readinessResponse{Status: "ready", Checks: checks})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.info.Production {
		respondWithJSON(w, r, http.StatusOK, map[string]string{
			"message": "Metrics endpoint - implement Prometheus metrics here",
		})
		return
	}
	respondWithJSON(w, r, http.StatusOK, map[string]string{
		"application": applicationSlug,
		"version":     h.info.Version,
		"environment": h.info.Environment,
		"status":      "running",
	})
}

type rootResponse struct {
	Name          string  `json:"name"`
	Version       string  `json:"version"`
	Environment   string  `json:"environment"`
	Documentation *string `json:"documentation"`
	Health        string  `json:"health"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	resp := rootResponse{
		Name:        h.info.Name,
		Version:     h.info.Version,
		Environment: h.info.Environment,
		Health:      "/health",
	}
	if !h.info.Production {
		docs := "/openapi.json"
		resp.Documentation = &docs
	}
	respondWithJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIDocument)
}

func (h *Handler) handleDashboardAnalytics(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.service.DashboardAnalytics(), "Dashboard analytics retrieved successfully")
}

func (h *Handler) handleSystemHealth(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.service.SystemHealth(), "System health metrics retrieved successfully")
}

// handleListSubscriptions serves one filtered page of subscriptions.
func (h *Handler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	params, fieldErrors := parseListSubscriptionsParams(r.URL.Query())
	if len(fieldErrors) > 0 {
		respondError(w, r, http.StatusUnprocessableEntity, codeValidation, "Request validation failed", fieldErrors...)
		return
	}

	page, err := h.service.ListSubscriptions(r.Context(), params)
	if err != nil {
		status, code, message := mapDomainError(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "failed to list subscriptions", "error", err)
		}
		respondError(w, r, status, code, message)
		return
	}

	respondSuccess(w, r, page, fmt.Sprintf("Retrieved %d subscriptions", len(page.Data)))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, codeNotFound, "Resource not found")
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
}
