// Package store provides a typed in-memory resource store for the client.
// Each entry is keyed by a logical resource name and carries a TTL; expired
// values are still served, flagged stale, so the UI can render immediately
// while a revalidation runs (stale-while-revalidate).
package store

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Store holds values of one resource type keyed by logical name.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	subs    map[string][]chan T
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Store whose entries go stale after ttl.
func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		subs:    make(map[string][]chan T),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the stored value, whether one exists, and whether it is past
// its TTL. Stale values are returned rather than dropped; the caller decides
// whether to revalidate.
func (s *Store[T]) Get(key string) (value T, ok bool, stale bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false, false
	}
	return e.value, true, s.now().Sub(e.storedAt) > s.ttl
}

// Set stores value under key with a fresh TTL and notifies subscribers.
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[T]{value: value, storedAt: s.now()}

	// Sends happen under the same lock that closes channels in cancel, so a
	// teardown can never close a channel mid-send. They are non-blocking:
	// a subscriber that is not draining just misses this value, the next
	// Set carries a newer one anyway.
	for _, ch := range s.subs[key] {
		select {
		case ch <- value:
		default:
		}
	}
}

// Invalidate removes the entry so the next Get reports a miss.
func (s *Store[T]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Subscribe returns a channel that receives every value stored under key,
// and a cancel function that unregisters and closes it.
func (s *Store[T]) Subscribe(key string) (<-chan T, func()) {
	ch := make(chan T, 1)

	s.mu.Lock()
	s.subs[key] = append(s.subs[key], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[key]
		for i, sub := range subs {
			if sub == ch {
				s.subs[key] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}
