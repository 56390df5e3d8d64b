/**
 * @description
 * This file defines the JSON envelopes the API answers with and the helpers that
 * write them, including the mapping from service errors to status codes.
 */
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/flowlytix/subscription-service/internal/domain"
)

// Error codes carried in ErrorPayload.Code.
const (
	codeInvalidInput     = "invalid_input"
	codeValidation       = "validation_error"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeRateLimited      = "rate_limited"
	codeInternal         = "internal_error"
)

// SuccessResponse is the envelope every API route answers with.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// FieldError describes one rejected request parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ErrorPayload carries the machine-readable code and the request id for support.
type ErrorPayload struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Details   []FieldError `json:"details,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// ErrorResponse is the uniform error envelope for domain, framework and
// unexpected failures.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   ErrorPayload `json:"error"`
	Message string       `json:"message"`
}

// respondWithJSON writes payload as JSON with the given status code.
func respondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	render.Status(r, code)
	render.JSON(w, r, payload)
}

func respondSuccess(w http.ResponseWriter, r *http.Request, data any, message string) {
	respondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true, Data: data, Message: message})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details ...FieldError) {
	respondWithJSON(w, r, status, ErrorResponse{
		Success: false,
		Error: ErrorPayload{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: requestIDFromContext(r.Context()),
		},
		Message: message,
	})
}

// mapDomainError converts a service error into an HTTP status, code and a
// message safe to show to clients.
func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidInput, err.Error()
	default:
		return http.StatusInternalServerError, codeInternal, "An unexpected error occurred"
	}
}
