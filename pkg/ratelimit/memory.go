package ratelimit

import (
	"context"
	"sync"
	"time"
)

type attempt struct {
	count     int
	firstSeen time.Time
}

// MemoryLimiter keeps per-key failure counters in a mutex-guarded map.
// Expiry is computed lazily on the next check, not via a background timer.
type MemoryLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attempt
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		attempts:    make(map[string]*attempt),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// WithClock replaces the time source; tests use it to fast-forward past the
// attempt window deterministically.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

func (l *MemoryLimiter) Check(_ context.Context, key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[key]
	if !ok || a.count < l.maxAttempts {
		return Decision{Allowed: true}
	}

	retryAfter := l.window - l.now().Sub(a.firstSeen)
	if retryAfter > 0 {
		return Decision{Allowed: false, RetryAfter: retryAfter}
	}

	// Cooldown has passed; the counter is stale.
	delete(l.attempts, key)
	return Decision{Allowed: true}
}

func (l *MemoryLimiter) RecordFailure(_ context.Context, key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[key]
	if !ok {
		a = &attempt{firstSeen: l.now()}
		l.attempts[key] = a
	}
	a.count++

	if a.count >= l.maxAttempts {
		return Decision{Allowed: false, RetryAfter: l.window}
	}
	return Decision{Allowed: true, Remaining: l.maxAttempts - a.count}
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}
