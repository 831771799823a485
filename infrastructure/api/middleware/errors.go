package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/axd-platform/catalog/application/service"
	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/internal/database"
	"github.com/axd-platform/catalog/internal/log"
	"github.com/rs/zerolog"
)

// APIError is an error with an explicit HTTP status, used for failures
// detected in the transport layer such as undecodable bodies.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// ErrorObject is one entry of an error response.
type ErrorObject struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	ID     string `json:"id,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Errors []ErrorObject `json:"errors"`
}

// StatusFor maps an error onto an HTTP status code.
func StatusFor(err error) int {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.code
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrPrincipalRequired),
		errors.Is(err, asset.ErrInvalidParent),
		errors.Is(err, asset.ErrEmptyComment),
		errors.Is(err, asset.ErrInvalidSensitivity),
		errors.Is(err, access.ErrInvalidLevel),
		errors.Is(err, access.ErrInvalidPurpose),
		errors.Is(err, access.ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, access.ErrNotRequester):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, access.ErrInvalidTransition),
		errors.Is(err, access.ErrAlreadyRevoked):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as an error response. Server errors are logged
// with the request's logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	detail := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.message
	}

	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	WriteJSON(w, status, ErrorResponse{Errors: []ErrorObject{{
		Status: strconv.Itoa(status),
		Title:  http.StatusText(status),
		Detail: detail,
		ID:     log.CorrelationID(r.Context()),
	}}})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
