// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// ErrorResponse is the structured error body returned by every endpoint.
// Error is the HTTP status text and StatusCode repeats the HTTP status.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// SuccessResponse is the body returned by login and logout.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewErrorResponse builds an ErrorResponse for statusCode.
func NewErrorResponse(statusCode int, message string) ErrorResponse {
	return ErrorResponse{
		Error:      http.StatusText(statusCode),
		Message:    message,
		StatusCode: statusCode,
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// Authentication failures keep their message verbatim; internal errors never expose details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var message string
	var authErr *credentialDomain.AuthError

	switch {
	case apperrors.As(err, &authErr):
		statusCode = http.StatusUnauthorized
		message = authErr.Message

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Authentication is required"

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found"

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with existing data"

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		message = "You don't have permission to access this resource"

	default:
		statusCode = http.StatusInternalServerError
		message = "An internal error occurred"
	}

	if logger != nil {
		level := slog.LevelDebug
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, NewErrorResponse(statusCode, message))
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, err.Error()))
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
}

// HandleTooManyRequestsGin writes a 429 response with a Retry-After header in seconds.
func HandleTooManyRequestsGin(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	c.JSON(http.StatusTooManyRequests, NewErrorResponse(
		http.StatusTooManyRequests,
		"Too many requests. Please retry after the specified delay.",
	))
}
