package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisLimiter shares the failure counters across instances. The window is
// enforced with a key TTL set on the first failure; Redis errors fail open
// so a cache outage never locks everyone out of the portal.
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger,
	}
}

func attemptsKey(key string) string {
	return fmt.Sprintf("login_attempts:%s", key)
}

func (l *RedisLimiter) Check(ctx context.Context, key string) Decision {
	count, err := l.client.Get(ctx, attemptsKey(key)).Int()
	if err == redis.Nil {
		return Decision{Allowed: true}
	}
	if err != nil {
		l.logger.Warn("login limiter check failed, allowing attempt", zap.Error(err))
		return Decision{Allowed: true}
	}

	if count < l.maxAttempts {
		return Decision{Allowed: true}
	}

	ttl, err := l.client.TTL(ctx, attemptsKey(key)).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return Decision{Allowed: false, RetryAfter: ttl}
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, key string) Decision {
	count, err := l.client.Incr(ctx, attemptsKey(key)).Result()
	if err != nil {
		l.logger.Warn("login limiter increment failed", zap.Error(err))
		return Decision{Allowed: true, Remaining: 1}
	}
	if count == 1 {
		l.client.Expire(ctx, attemptsKey(key), l.window)
	}

	if int(count) >= l.maxAttempts {
		return Decision{Allowed: false, RetryAfter: l.window}
	}
	return Decision{Allowed: true, Remaining: l.maxAttempts - int(count)}
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) {
	if err := l.client.Del(ctx, attemptsKey(key)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}
