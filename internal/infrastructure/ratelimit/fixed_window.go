package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// INCR + PEXPIRE in one round trip so the first hit of a window atomically
// arms its expiry.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// FixedWindow limits requests per key in fixed time windows, backed by Redis
// so the count is shared across instances.
type FixedWindow struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewFixedWindow(client *redis.Client, prefix string, limit int, window time.Duration) *FixedWindow {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &FixedWindow{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow reports whether the key is within quota for the current window. On
// Redis failures it fails closed.
func (l *FixedWindow) Allow(ctx context.Context, key string) bool {
	if l.limit <= 0 || l.window <= 0 {
		return true
	}
	if key == "" {
		key = "unknown"
	}

	windowMs := l.window.Milliseconds()
	slot := time.Now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false
	}
	return count <= int64(l.limit)
}
