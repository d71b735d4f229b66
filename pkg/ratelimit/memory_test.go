package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(start time.Time) (*MemoryLimiter, *time.Time) {
	now := start
	l := NewMemoryLimiter(3, 60*time.Second).WithClock(func() time.Time { return now })
	return l, &now
}

func TestMemoryLimiter_LocksAfterThreeFailures(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))

	d := l.RecordFailure(ctx, "teacher01")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)

	d = l.RecordFailure(ctx, "teacher01")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	d = l.RecordFailure(ctx, "teacher01")
	assert.False(t, d.Allowed)
	assert.Equal(t, 60*time.Second, d.RetryAfter)

	// The fourth attempt is refused before credentials are even checked.
	d = l.Check(ctx, "teacher01")
	require.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
}

func TestMemoryLimiter_WindowExpiry(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLimiter(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		l.RecordFailure(ctx, "teacher01")
	}
	require.False(t, l.Check(ctx, "teacher01").Allowed)

	// 30s in, still locked and the retry hint shrinks accordingly.
	*now = now.Add(30 * time.Second)
	d := l.Check(ctx, "teacher01")
	require.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.RetryAfter)

	// Past the window the counter is discarded lazily.
	*now = now.Add(31 * time.Second)
	assert.True(t, l.Check(ctx, "teacher01").Allowed)

	// And the next failure starts a fresh count.
	d = l.RecordFailure(ctx, "teacher01")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestMemoryLimiter_ResetOnSuccess(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(time.Now())

	l.RecordFailure(ctx, "teacher01")
	l.RecordFailure(ctx, "teacher01")
	l.Reset(ctx, "teacher01")

	d := l.RecordFailure(ctx, "teacher01")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(time.Now())

	for i := 0; i < 3; i++ {
		l.RecordFailure(ctx, "teacher01")
	}
	assert.False(t, l.Check(ctx, "teacher01").Allowed)
	assert.True(t, l.Check(ctx, "teacher02").Allowed)
}
