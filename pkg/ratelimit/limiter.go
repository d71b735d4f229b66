// Package ratelimit throttles login attempts per username. The limiter is an
// injectable abstraction: the in-memory backend suits a single instance and
// is explicitly non-persistent (counters reset on process restart); the Redis
// backend is for horizontally scaled deployments.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of consulting the limiter for a key.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the caller must wait when not allowed.
	RetryAfter time.Duration
	// Remaining is how many failures are left before lockout; meaningful
	// only on RecordFailure results that are still allowed.
	Remaining int
}

type LoginLimiter interface {
	// Check reports whether an attempt for key may proceed right now.
	Check(ctx context.Context, key string) Decision
	// RecordFailure registers a failed attempt and reports the new state.
	RecordFailure(ctx context.Context, key string) Decision
	// Reset clears the counter after a successful attempt.
	Reset(ctx context.Context, key string)
}
