package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiter_PerKeyBudget(t *testing.T) {
	l, err := NewLocalLimiter(3, time.Minute)
	require.NoError(t, err)
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "other clients have their own budget")

	now = now.Add(20 * time.Second)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "tokens refill over the window")
}

func TestLocalLimiter_EvictsIdleKeys(t *testing.T) {
	l, err := NewLocalLimiter(1, time.Second)
	require.NoError(t, err)
	now := time.Now()
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "old")
	now = now.Add(time.Minute)
	l.evictIdle(now)
	assert.NotContains(t, l.visitors, "old")
}

func TestNewLocalLimiter_Validates(t *testing.T) {
	_, err := NewLocalLimiter(0, time.Minute)
	assert.Error(t, err)
	_, err = NewLocalLimiter(5, 0)
	assert.Error(t, err)
}
