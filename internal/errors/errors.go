package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents one failed field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 413 Payload Too Large
	ErrPayloadTooLarge = New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body exceeds the maximum allowed size")

	// 415 Unsupported Media Type
	ErrUnsupportedMediaType = New(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Unsupported content type")

	// 422 Unprocessable Entity
	ErrWorkbookInvalid = New(http.StatusUnprocessableEntity, "WORKBOOK_INVALID", "Workbook could not be read")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// WorkbookInvalidError reports an unreadable upload part
func WorkbookInvalidError(part string, err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "WORKBOOK_INVALID",
		fmt.Sprintf("Workbook %q could not be read", part), err.Error())
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}

// NewValidationError creates a simple validation error
func NewValidationError(message string) *APIError {
	return New(http.StatusBadRequest, "VALIDATION_FAILED", message)
}
