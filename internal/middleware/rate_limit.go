package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hyper-a11/cyber-gst-info/internal/cache"
	"github.com/hyper-a11/cyber-gst-info/pkg/errors"
)

// RateLimitMiddleware creates a rate limiting middleware keyed on the API key
// query parameter.
func RateLimitMiddleware(limiter cache.Limiter, logger *zap.Logger, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Keyless requests pass through; the authorizer rejects them
			// before any upstream work happens.
			key := r.URL.Query().Get("key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			exceeded, err := limiter.CheckRateLimit(ctx, key, limit, window)
			if err != nil {
				logger.Error("Rate limit check failed", zap.Error(err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(errors.ErrInternalServer.HTTPStatus)
				w.Write([]byte(`{"status":"` + errors.ErrInternalServer.Status + `","error":"` + errors.ErrInternalServer.Message + `"}`))
				return
			}

			if exceeded {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				w.WriteHeader(errors.ErrRateLimitExceeded.HTTPStatus)
				w.Write([]byte(`{"status":"` + errors.ErrRateLimitExceeded.Status + `","error":"` + errors.ErrRateLimitExceeded.Message + `"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
