package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnsNoOpWhenDisabled(t *testing.T) {
	_, ok := New(0, 1).(*NoOpRateLimiter)
	assert.True(t, ok)
	_, ok = New(5, 1).(*HostLimiter)
	assert.True(t, ok)
}

func TestNoOpRateLimiterHonoursCancellation(t *testing.T) {
	limiter := NewNoOpRateLimiter()
	require.NoError(t, limiter.Acquire(context.Background(), "h"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, limiter.Acquire(ctx, "h"), context.Canceled)
}

func TestHostLimiterSpacesRequests(t *testing.T) {
	limiter := NewHostLimiter(20, 1)
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(context.Background(), "h"))
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestHostLimiterBucketsArePerHost(t *testing.T) {
	limiter := NewHostLimiter(1, 1)
	require.NoError(t, limiter.Acquire(context.Background(), "a"))

	start := time.Now()
	require.NoError(t, limiter.Acquire(context.Background(), "b"))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestHostLimiterCancelled(t *testing.T) {
	limiter := NewHostLimiter(0.1, 1)
	require.NoError(t, limiter.Acquire(context.Background(), "h"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, limiter.Acquire(ctx, "h"))
}
