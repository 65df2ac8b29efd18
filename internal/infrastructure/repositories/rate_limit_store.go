package repositories

import (
	"sync"
	"time"

	"github.com/quillblog/quill/internal/core/ports"
)

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimitStore implements rate limiting counters with an in-process
// mutex-guarded map. Counters do not survive a restart; entries for idle keys
// linger until their next use resets them, which is harmless. The store is an
// owned object rather than package state so tests can run isolated instances
// and a shared external store can replace it behind the same interface.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewMemoryRateLimitStore creates an empty counter store.
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// NewMemoryRateLimitStoreWithClock creates a store with an injected clock.
func NewMemoryRateLimitStoreWithClock(now func() time.Time) *MemoryRateLimitStore {
	s := NewMemoryRateLimitStore()
	s.now = now
	return s
}

// Check counts one request against key's fixed window. The check and the
// increment happen under one lock so concurrent callers cannot both slip past
// the limit.
func (s *MemoryRateLimitStore) Check(key string, interval time.Duration, maxRequests int) ports.RateLimitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &rateLimitEntry{count: 1, resetAt: now.Add(interval)}
		s.entries[key] = entry
		return ports.RateLimitResult{Allowed: true, Remaining: maxRequests - 1, ResetAt: entry.resetAt}
	}

	if entry.count >= maxRequests {
		return ports.RateLimitResult{Allowed: false, Remaining: 0, ResetAt: entry.resetAt}
	}

	entry.count++
	return ports.RateLimitResult{Allowed: true, Remaining: maxRequests - entry.count, ResetAt: entry.resetAt}
}
