package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	apierrors "sheetops/internal/errors"
	"sheetops/internal/infrastructure"
)

type contextKey string

// RequestIDKey is the context key for request ID
const RequestIDKey contextKey = "request-id"

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID middleware generates a unique request ID for each request.
// An incoming X-Request-ID is reused. This should be the FIRST middleware in the chain.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		// chi's key as well, so middleware.GetReqID works in the error handler
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = context.WithValue(ctx, middleware.RequestIDKey, requestID)
		ctx = infrastructure.WithTraceID(ctx, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetReqID retrieves the request ID from the context
func GetReqID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// StructuredLogger logs request start and completion with slog.
// This should come AFTER RequestID.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "http"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			logger.DebugContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
			)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(ctx, level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", GetReqID(ctx)),
			)
		})
	}
}

// Timeout bounds the request context. Handlers observe the deadline through
// ctx and report context.DeadlineExceeded, which the error handler maps to 504.
func Timeout(timeout time.Duration, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if ctx.Err() == context.DeadlineExceeded {
				logger.WarnContext(r.Context(), "request timeout",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", timeout),
				)
			}
		})
	}
}

// SecurityHeaders adds security-related headers
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// MaxBodySize caps request bodies. Reads past the limit fail with *http.MaxBytesError.
func MaxBodySize(limit int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContentType rejects non-GET requests whose media type is not in allowed
func ContentType(errorHandler *apierrors.ErrorHandler, allowed ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				errorHandler.HandleError(w, r, apierrors.ErrValidation("Content-Type", "header is required"))
				return
			}

			if !hasMediaType(contentType, allowed) {
				errorHandler.HandleError(w, r, apierrors.NewWithDetails(
					http.StatusUnsupportedMediaType,
					"UNSUPPORTED_MEDIA_TYPE",
					"Unsupported content type",
					map[string]interface{}{
						"content_type": contentType,
						"allowed":      allowed,
					},
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
