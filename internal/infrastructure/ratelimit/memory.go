// Package ratelimit holds the process-local rate-limit store used when no
// shared Redis is configured. Its state is lost on restart and is not shared
// between instances.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/foodhub/ordering-system/internal/core/ports"
)

type window struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded fixed-window counter.
type MemoryStore struct {
	mu         sync.Mutex
	windows    map[string]*window
	restricted map[string]struct{}
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows:    make(map[string]*window),
		restricted: make(map[string]struct{}),
		now:        time.Now,
	}
}

func (s *MemoryStore) Hit(_ context.Context, key string, d time.Duration) (ports.RateLimitWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		w = &window{expiresAt: now.Add(d)}
		s.windows[key] = w
	}
	w.count++

	return ports.RateLimitWindow{Count: w.count, ResetIn: w.expiresAt.Sub(now)}, nil
}

func (s *MemoryStore) Restrict(_ context.Context, clientIP string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restricted[clientIP]; ok {
		return false, nil
	}
	s.restricted[clientIP] = struct{}{}
	return true, nil
}

// Restricted returns a snapshot of clients that have hit their ceiling.
func (s *MemoryStore) Restricted(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.restricted))
	for ip := range s.restricted {
		out = append(out, ip)
	}
	return out, nil
}

// Sweep drops expired windows. Run it periodically to bound memory.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, w := range s.windows {
		if !now.Before(w.expiresAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
