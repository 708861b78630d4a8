package ports

import (
	"context"
	"time"
)

// RateLimitWindow is the state of a fixed window after a hit.
type RateLimitWindow struct {
	Count   int64
	ResetIn time.Duration
}

// RateLimitStore counts requests per key in fixed windows and remembers
// clients that exceeded their ceiling.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (RateLimitWindow, error)
	// Restrict records clientIP and reports whether it was newly added.
	Restrict(ctx context.Context, clientIP string) (bool, error)
	Restricted(ctx context.Context) ([]string, error)
}
