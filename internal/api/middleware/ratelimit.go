package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/phrazzld/devlink-api/internal/api/shared"
	"github.com/phrazzld/devlink-api/internal/platform/logger"
	"github.com/phrazzld/devlink-api/internal/platform/metrics"
	"github.com/phrazzld/devlink-api/internal/redact"
)

// Limiter decides whether another request for key fits in its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over budget with 429. Clients are keyed by
// remote IP, so RealIP should run first when behind a proxy. A limiter error
// lets the request through.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), "ip:"+clientIP(r))
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limiter unavailable, allowing request",
					"error", redact.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				metrics.RateLimited.Inc()
				shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
