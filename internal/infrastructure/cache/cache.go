// Package cache provides the in-process TTL store used for transcripts,
// metadata, and other memoized values.
//
// Entries carry their creation time and are served only while
// now - created_at < ttl; an expired entry is treated as absent and
// replaced by the next store. Nothing here persists across the process.
package cache

import (
	"sync"
	"time"

	"github.com/yoyaktube/yyt/internal/ports"
)

// DefaultTTL is the expiry applied to transcript and metadata entries.
const DefaultTTL = 3600 * time.Second

// Entry is one cached value with its creation timestamp.
type Entry[T any] struct {
	Value     T
	CreatedAt time.Time
}

// Expired reports whether the entry is stale at the given instant.
func (e Entry[T]) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) >= ttl
}

// Store is a mutex-guarded key-value store with time-based expiry. The
// core is single-threaded, but the lock keeps the
// at-most-one-live-entry-per-key invariant cheap to preserve if callers
// ever go concurrent.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   ports.Clock
	entries map[string]Entry[T]
}

// NewStore builds a store with the given TTL. A nil clock defaults to
// the wall clock.
func NewStore[T any](ttl time.Duration, clock ports.Clock) *Store[T] {
	if clock == nil {
		clock = ports.ClockFunc(time.Now)
	}
	return &Store[T]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]Entry[T]),
	}
}

// Get returns the live value for key. Expired entries are removed and
// reported as absent.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if entry.Expired(s.clock.Now(), s.ttl) {
		delete(s.entries, key)
		var zero T
		return zero, false
	}
	return entry.Value, true
}

// Set stores value under key with a fresh creation timestamp, replacing
// any previous entry.
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry[T]{Value: value, CreatedAt: s.clock.Now()}
}

// Len reports the number of stored entries, expired ones included.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear drops every entry.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry[T])
}
