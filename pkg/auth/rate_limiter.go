package auth

import (
	"sync"
	"time"
)

// IPRateLimiter is an in-memory token bucket limiter keyed by client IP,
// applied in front of authentication.
type IPRateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewIPRateLimiter creates a limiter allowing requestsPerMinute per IP.
func NewIPRateLimiter(requestsPerMinute int) *IPRateLimiter {
	limiter := &IPRateLimiter{
		buckets:    make(map[string]*bucket),
		maxTokens:  requestsPerMinute,
		refillRate: time.Minute / time.Duration(requestsPerMinute),
	}
	go limiter.cleanup()
	return limiter
}

// Allow reports whether a request from key may proceed.
func (l *IPRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{tokens: l.maxTokens, lastRefill: time.Now()}
		l.buckets[key] = b
	}

	now := time.Now()
	tokensToAdd := int(now.Sub(b.lastRefill) / l.refillRate)
	if tokensToAdd > 0 {
		b.tokens = min(b.tokens+tokensToAdd, l.maxTokens)
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// cleanup drops buckets idle for over an hour.
func (l *IPRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, b := range l.buckets {
			if now.Sub(b.lastRefill) > time.Hour {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}
