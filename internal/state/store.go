package state

import (
	"sync"
	"time"

	funds "lngtrade-cloud/internal/funds/domain"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Store is the single-writer state container. There is exactly one logical
// writer at a time; the mutex only shields snapshot readers from a commit
// in flight.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore constructs a store seeded with the given state.
func NewStore(seed State) *Store {
	return &Store{state: seed.Clone()}
}

// Snapshot returns a detached deep copy of the current state. Callers may
// mutate the copy freely without corrupting subsequent reads.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Account returns the current fund position without cloning the rest of
// the state. Gauges read this on every scrape.
func (s *Store) Account() funds.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Account
}

// Update runs fn against a working copy and commits it atomically. If fn
// returns an error the copy is discarded and nothing changes.
func (s *Store) Update(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.state = next
	return nil
}
