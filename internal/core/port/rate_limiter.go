package port

import "context"

// RateLimiterPort decides whether a caller identified by key may make another request.
type RateLimiterPort interface {
	Allow(ctx context.Context, key string) (bool, error)
}
