package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lua script: atomic INCR + PEXPIRE on the first hit of a window
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter is a fixed-window limiter shared by every instance connected to
// the same Redis.
type RedisLimiter struct {
	rdb    redis.UniversalClient
	max    int
	window time.Duration
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter allows max requests per key in each window.
func NewRedisLimiter(rdb redis.UniversalClient, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window}
}

// Allow counts one request for key. Redis errors are returned as is; the
// middleware fails open on them.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, err := incrExpireScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit incr: %w", err)
	}

	ttl, err := l.rdb.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}

	remaining := l.max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:    int(count) <= l.max,
		Limit:      l.max,
		Remaining:  remaining,
		ResetAfter: ttl,
	}, nil
}
