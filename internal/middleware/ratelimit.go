package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	apierrors "sheetops/internal/errors"
)

// RateLimiter applies a global token bucket to every request
type RateLimiter struct {
	limiter      *rate.Limiter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRateLimiter creates a limiter allowing rps requests per second with the given burst
func NewRateLimiter(rps float64, burst int, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RateLimiter {
	return &RateLimiter{
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		logger:       logger,
		errorHandler: errorHandler,
	}
}

// Handler implements rate limiting middleware
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			rl.logger.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)

			w.Header().Set("Retry-After", "1")
			rl.errorHandler.HandleError(w, r, apierrors.ErrRateLimitExceeded)
			return
		}

		next.ServeHTTP(w, r)
	})
}
