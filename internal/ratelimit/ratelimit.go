package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kakarot0105/JobBot/internal/model"
)

// ProviderRateLimiter enforces a minimum delay between requests to the same
// provider backend. In the daemon, successive scheduled runs share one
// limiter so back-to-back triggers stay polite.
type ProviderRateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: provider name
	minDelay time.Duration
}

// NewProviderRateLimiter creates a rate limiter that enforces minDelay
// between consecutive requests to the same provider.
func NewProviderRateLimiter(minDelay time.Duration) *ProviderRateLimiter {
	return &ProviderRateLimiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the
// given provider. Returns an error if the context is cancelled while waiting.
func (r *ProviderRateLimiter) Wait(ctx context.Context, provider string) error {
	r.mu.Lock()
	last, ok := r.lastCall[provider]
	now := time.Now()

	if !ok {
		// First request for this provider — no wait needed.
		r.lastCall[provider] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= r.minDelay {
		r.lastCall[provider] = now
		r.mu.Unlock()
		return nil
	}

	remaining := r.minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", provider, ctx.Err())
	case <-time.After(remaining):
	}

	r.mu.Lock()
	r.lastCall[provider] = time.Now()
	r.mu.Unlock()

	return nil
}

// Source is a decorator that waits for the provider's rate limit slot before
// delegating to the wrapped source.
type Source struct {
	inner   model.Source
	limiter *ProviderRateLimiter
}

// NewSource wraps a source with provider-level rate limiting. Sources
// sharing an upstream should share the same limiter instance.
func NewSource(inner model.Source, limiter *ProviderRateLimiter) *Source {
	return &Source{inner: inner, limiter: limiter}
}

func (s *Source) Name() string { return s.inner.Name() }

// Fetch waits for the rate limiter to allow a request, then delegates.
func (s *Source) Fetch(ctx context.Context, keywords []string, location string) ([]model.Job, error) {
	if err := s.limiter.Wait(ctx, s.inner.Name()); err != nil {
		return nil, err
	}
	return s.inner.Fetch(ctx, keywords, location)
}
