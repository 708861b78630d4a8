package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodhub/ordering-system/internal/core/ports"
)

const (
	rateLimitPrefix = "ratelimit:"
	restrictedKey   = "ratelimit:restricted"
)

// hitScript increments the window counter and starts its expiry on the first
// hit, atomically. Returns {count, pttl}.
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

// RateLimitStore keeps fixed-window counters in Redis so every instance
// behind a load balancer shares the same ceiling.
// Key format: ratelimit:<key>
type RateLimitStore struct {
	client *redis.Client
}

func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

func (s *RateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (ports.RateLimitWindow, error) {
	res, err := hitScript.Run(ctx, s.client, []string{rateLimitPrefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return ports.RateLimitWindow{}, fmt.Errorf("rate limit hit: %w", err)
	}
	if len(res) != 2 {
		return ports.RateLimitWindow{}, fmt.Errorf("rate limit hit: unexpected reply %v", res)
	}

	resetIn := time.Duration(res[1]) * time.Millisecond
	if resetIn < 0 {
		resetIn = window
	}
	return ports.RateLimitWindow{Count: res[0], ResetIn: resetIn}, nil
}

func (s *RateLimitStore) Restrict(ctx context.Context, clientIP string) (bool, error) {
	added, err := s.client.SAdd(ctx, restrictedKey, clientIP).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit restrict: %w", err)
	}
	return added > 0, nil
}

func (s *RateLimitStore) Restricted(ctx context.Context) ([]string, error) {
	ips, err := s.client.SMembers(ctx, restrictedKey).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit restricted: %w", err)
	}
	return ips, nil
}
