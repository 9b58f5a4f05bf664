// Package ratelimit provides rate limiting for outgoing probe requests.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter defines the interface for rate limiting probe requests.
type RateLimiter interface {
	// Acquire blocks until a request to host can proceed, or returns error if cancelled.
	Acquire(ctx context.Context, host string) error
}

// NoOpRateLimiter allows all requests immediately.
type NoOpRateLimiter struct{}

func NewNoOpRateLimiter() *NoOpRateLimiter {
	return &NoOpRateLimiter{}
}

// Acquire only honours cancellation.
func (n *NoOpRateLimiter) Acquire(ctx context.Context, host string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// HostLimiter keeps one token bucket per host.
type HostLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	perHost map[string]*rate.Limiter
}

// NewHostLimiter creates a limiter allowing requestsPerSecond per host with the given burst.
func NewHostLimiter(requestsPerSecond float64, burst int) *HostLimiter {
	if burst < 1 {
		burst = 1
	}
	return &HostLimiter{
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		perHost: make(map[string]*rate.Limiter),
	}
}

func (l *HostLimiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.perHost[host]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.perHost[host] = limiter
	}
	return limiter
}

// Acquire waits for a token of the host bucket.
func (l *HostLimiter) Acquire(ctx context.Context, host string) error {
	return l.limiterFor(host).Wait(ctx)
}

// New returns a HostLimiter, or a NoOpRateLimiter when requestsPerSecond is not positive.
func New(requestsPerSecond float64, burst int) RateLimiter {
	if requestsPerSecond <= 0 {
		return NewNoOpRateLimiter()
	}
	return NewHostLimiter(requestsPerSecond, burst)
}
