// Package ratelimit implements a fixed-window request counter on top of Redis.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Counter is the subset of redis.Cmdable the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// FixedWindow allows Limit hits per key within each Window.
type FixedWindow struct {
	counter Counter
	prefix  string
	limit   int
	window  time.Duration
}

func NewFixedWindow(counter Counter, prefix string, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		counter: counter,
		prefix:  prefix,
		limit:   limit,
		window:  window,
	}
}

// Allow registers a hit for key. Redis failures let the request through:
// an unavailable limiter must not take the API down with it.
func (f *FixedWindow) Allow(ctx context.Context, key string) Result {
	redisKey := f.prefix + ":" + key

	hits, err := f.counter.Incr(ctx, redisKey).Result()
	if err != nil {
		logger(ctx).Warn("rate limiter unavailable", slog.String("key", redisKey), logx.Error(err))
		return Result{Allowed: true, Remaining: f.limit}
	}

	if hits == 1 {
		if err := f.counter.Expire(ctx, redisKey, f.window).Err(); err != nil {
			logger(ctx).Warn("rate limiter expire failed", slog.String("key", redisKey), logx.Error(err))
		}
	}

	if hits <= int64(f.limit) {
		return Result{Allowed: true, Remaining: f.limit - int(hits)}
	}

	return Result{Allowed: false, RetryAfter: f.retryAfter(ctx, redisKey)}
}

func (f *FixedWindow) retryAfter(ctx context.Context, key string) time.Duration {
	ttl, err := f.counter.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		if ttl == -1 {
			// Ключ остался без срока жизни: чиним, иначе окно не закроется.
			_ = f.counter.Expire(ctx, key, f.window).Err()
		}

		return f.window
	}

	return ttl
}
