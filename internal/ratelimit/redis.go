/**
 * @description
 * This file implements the Redis-backed limiter. A Lua script increments the
 * per-client counter and sets its expiry atomically.
 */
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Redis implements a fixed-window limiter shared by every instance using the same server.
type Redis struct {
	client redis.Scripter
	prefix string
	limit  int
	period time.Duration
}

// NewRedis allows limit requests per key in every period, counting under prefix.
func NewRedis(client redis.Scripter, prefix string, limit int, period time.Duration) *Redis {
	trimmed := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if trimmed == "" {
		trimmed = "flowlytix:rate_limit"
	}
	if period < time.Second {
		period = time.Second
	}
	return &Redis{client: client, prefix: trimmed, limit: limit, period: period}
}

// Allow counts one request for key in Redis. Transport and script errors are
// returned so the caller can decide whether to fail open.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	windowMs := r.period.Milliseconds()
	raw, err := fixedWindowScript.Run(ctx, r.client, []string{r.key(key)}, windowMs).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis limiter: %w", err)
	}

	count, ttlMs, err := parseScriptResult(raw)
	if err != nil {
		return Decision{}, err
	}
	if ttlMs < 0 {
		ttlMs = windowMs
	}

	d := Decision{
		Allowed:    count <= int64(r.limit),
		Limit:      r.limit,
		RetryAfter: time.Duration(ttlMs) * time.Millisecond,
	}
	if d.Allowed {
		d.Remaining = r.limit - int(count)
	}
	return d, nil
}

func (r *Redis) key(subject string) string {
	return fmt.Sprintf("%s:%s", r.prefix, strings.TrimSpace(subject))
}

func parseScriptResult(raw interface{}) (count int64, ttlMs int64, err error) {
	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return 0, 0, fmt.Errorf("unexpected redis limiter response shape: %T", raw)
	}
	count, ok = values[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected redis limiter count type: %T", values[0])
	}
	ttlMs, ok = values[1].(int64)
	if !ok {
		return count, 0, fmt.Errorf("unexpected redis limiter ttl type: %T", values[1])
	}
	return count, ttlMs, nil
}
