package ratelimit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"buyback/pkg/ratelimit"
)

type memCounter struct {
	mu      sync.Mutex
	hits    map[string]int64
	ttl     map[string]time.Duration
	incrErr error
}

func newMemCounter() *memCounter {
	return &memCounter{hits: map[string]int64{}, ttl: map[string]time.Duration{}}
}

func (m *memCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.incrErr != nil {
		return redis.NewIntResult(0, m.incrErr)
	}

	m.hits[key]++

	return redis.NewIntResult(m.hits[key], nil)
}

func (m *memCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ttl[key] = expiration

	return redis.NewBoolResult(true, nil)
}

func (m *memCounter) TTL(_ context.Context, key string) *redis.DurationCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	ttl, ok := m.ttl[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}

	return redis.NewDurationResult(ttl, nil)
}

func TestFixedWindow_Allow(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	counter := newMemCounter()
	limiter := ratelimit.NewFixedWindow(counter, "throttle:create", 3, time.Minute)
	ctx := context.Background()

	for i := range 3 {
		res := limiter.Allow(ctx, "10.0.0.1")
		rq.True(res.Allowed, "hit %d", i+1)
		rq.Equal(2-i, res.Remaining)
	}

	res := limiter.Allow(ctx, "10.0.0.1")
	rq.False(res.Allowed)
	rq.Equal(time.Minute, res.RetryAfter)

	rq.True(limiter.Allow(ctx, "10.0.0.2").Allowed, "keys are independent")
	rq.Equal(time.Minute, counter.ttl["throttle:create:10.0.0.1"])
}

func TestFixedWindow_FailsOpen(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	counter := newMemCounter()
	counter.incrErr = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

	limiter := ratelimit.NewFixedWindow(counter, "throttle", 1, time.Minute)

	for range 5 {
		rq.True(limiter.Allow(context.Background(), "ip").Allowed)
	}
}

func TestFixedWindow_RepairsMissingTTL(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	counter := newMemCounter()
	counter.hits["throttle:ip"] = 5

	limiter := ratelimit.NewFixedWindow(counter, "throttle", 1, 30*time.Second)

	res := limiter.Allow(context.Background(), "ip")
	rq.False(res.Allowed)
	rq.Equal(30*time.Second, res.RetryAfter)
	rq.Equal(30*time.Second, counter.ttl["throttle:ip"])
}
