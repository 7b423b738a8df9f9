package domain

import (
	"sync"
	"time"
)

// Session holds the composition of one editing session. Callers never mutate
// the held value: they compute the next composition from a snapshot and the
// session adopts it as a whole.
type Session struct {
	mu          sync.RWMutex
	composition Composition
	updatedAt   time.Time
	revision    int64
}

// NewSession starts a session with the default composition
func NewSession() *Session {
	return &Session{
		composition: NewComposition(),
		updatedAt:   time.Now().UTC(),
	}
}

// Snapshot returns a copy of the current composition
func (s *Session) Snapshot() Composition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composition.Clone()
}

// Revision counts adopted changes since the session started
func (s *Session) Revision() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// UpdatedAt returns the time of the last adopted change
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Apply computes the next composition with fn and adopts it. When fn returns
// an error the current composition is kept.
func (s *Session) Apply(fn func(current Composition) (Composition, error)) (Composition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.composition.Clone())
	if err != nil {
		return s.composition.Clone(), err
	}

	s.composition = next
	s.revision++
	s.updatedAt = time.Now().UTC()
	return next.Clone(), nil
}

// Reset restores the default composition
func (s *Session) Reset() Composition {
	c, _ := s.Apply(func(Composition) (Composition, error) {
		return NewComposition(), nil
	})
	return c
}
