package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"net"
	"net/http"
)

type rejectionCounter interface {
	IncRateLimited()
}

// RateLimitMiddleware limits requests per client address. Limiter failures
// let the request through so an unavailable Redis does not take search down.
func RateLimitMiddleware(limiter port.RateLimiterPort, metrics rejectionCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				contextkeys.LoggerFromContext(r.Context()).Warn("Rate limiter unavailable, allowing request", port.Fields{
					"error": err.Error(),
				})
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if metrics != nil {
					metrics.IncRateLimited()
				}
				w.Header().Set("Retry-After", "60")
				WriteJSONError(w, http.StatusTooManyRequests, "Too many requests.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey relies on middleware.RealIP having rewritten RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
