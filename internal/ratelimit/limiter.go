package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles calls per upstream provider name so a burst of submits
// from many sessions cannot hammer one provider.
type Limiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func New(config Config) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewWithDefaults() *Limiter {
	return New(DefaultConfig())
}

func (l *Limiter) limiterFor(provider string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[provider]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[provider]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[provider] = limiter
	return limiter
}

func (l *Limiter) SetLimit(provider string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[provider] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (l *Limiter) Wait(ctx context.Context, provider string) error {
	return l.limiterFor(provider).Wait(ctx)
}
