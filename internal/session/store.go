// Package session holds the analysis currently shown to the user.
package session

import (
	"sync"
)

// Store is a single slot: a new value replaces the old one wholesale and
// Clear empties it. The zero value is ready to use.
type Store[T any] struct {
	mu    sync.RWMutex
	value *T
}

func (s *Store[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = &value
}

func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
}

// Current returns the stored value and whether one is set. The struct is
// copied but slices and pointers inside it are shared with the stored value,
// so callers must treat them as read-only.
func (s *Store[T]) Current() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.value == nil {
		var zero T
		return zero, false
	}
	return *s.value, true
}
