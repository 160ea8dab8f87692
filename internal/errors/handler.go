package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Common error types following RFC 7807
const (
	TypeValidation      = "/errors/validation"
	TypeNotFound        = "/errors/not-found"
	TypeMethodNotAllow  = "/errors/method-not-allowed"
	TypeRateLimit       = "/errors/rate-limit"
	TypeInternal        = "/errors/internal"
	TypeServiceDown     = "/errors/service-unavailable"
	TypeTimeout         = "/errors/timeout"
	TypePayloadTooLarge = "/errors/payload-too-large"
	TypeUnsupportedType = "/errors/unsupported-media-type"
)

// Domain-specific error types
const (
	TypeWorkbookInvalid = "/errors/workbook/invalid"
	TypeStorage         = "/errors/storage"
	TypeConfig          = "/errors/config"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	problem := h.ErrorToProblem(err, r)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem.WithExtension("trace_id", reqID)
	if h.includeStack && problem.Status >= http.StatusInternalServerError {
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return NewProblemDetails(
			http.StatusRequestEntityTooLarge,
			TypePayloadTooLarge,
			"Payload Too Large",
			"The request body exceeds the maximum allowed size",
			r.URL.Path,
		).WithExtension("limit", maxBytesErr.Limit)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return h.appErrorToProblem(appErr, r)
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing your request",
		r.URL.Path,
	)
}

// apiErrorToProblem converts APIError to ProblemDetails
func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case "VALIDATION_FAILED", "INVALID_REQUEST", "MISSING_PARAMETER":
		problemType = TypeValidation
	case "NOT_FOUND":
		problemType = TypeNotFound
	case "PAYLOAD_TOO_LARGE":
		problemType = TypePayloadTooLarge
	case "UNSUPPORTED_MEDIA_TYPE":
		problemType = TypeUnsupportedType
	case "WORKBOOK_INVALID":
		problemType = TypeWorkbookInvalid
	case "RATE_LIMIT_EXCEEDED":
		problemType = TypeRateLimit
	case "FILESYSTEM_ERROR":
		problemType = TypeStorage
	case "SERVICE_UNAVAILABLE":
		problemType = TypeServiceDown
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}

	return problem
}

// appErrorToProblem maps internal error categories onto HTTP statuses.
// Storage and config failures never expose their cause.
func (h *ErrorHandler) appErrorToProblem(appErr *AppError, r *http.Request) *ProblemDetails {
	switch appErr.Type {
	case ErrTypeParsing:
		problem := NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeWorkbookInvalid,
			"Workbook Invalid",
			appErr.Message,
			r.URL.Path,
		)
		if appErr.Cause != nil {
			problem.WithExtension("cause", appErr.Cause.Error())
		}
		return problem
	case ErrTypeValidation:
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Validation Failed",
			appErr.Message,
			r.URL.Path,
		)
	case ErrTypeNotFound:
		return NewProblemDetails(
			http.StatusNotFound,
			TypeNotFound,
			"Resource Not Found",
			appErr.Message,
			r.URL.Path,
		)
	case ErrTypeStorage:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeStorage,
			"Storage Error",
			"A file system operation failed",
			r.URL.Path,
		)
	case ErrTypeConfig:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeConfig,
			"Configuration Error",
			"The service is misconfigured",
			r.URL.Path,
		)
	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request",
			r.URL.Path,
		)
	}
}

// HandlePanic recovers from panics and returns RFC 7807 error
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeMethodNotAllow,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// JSON writes v with the given status through render
func (h *ErrorHandler) JSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
