package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed window counter shared by every instance of the service.
type RedisLimiter struct {
	client      *redis.Client
	maxRequests int64
	window      time.Duration
	prefix      string
}

func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) (*RedisLimiter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if maxRequests < 1 || window <= 0 {
		return nil, fmt.Errorf("rate limit must allow at least one request per positive window")
	}
	return &RedisLimiter{
		client:      client,
		maxRequests: int64(maxRequests),
		window:      window,
		prefix:      "rl:",
	}, nil
}

// Allow increments the caller's counter and sets its expiry on the first hit
// of a window, both in one round-trip.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limiter: redis pipeline failed: %w", err)
	}
	return incr.Val() <= l.maxRequests, nil
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}
