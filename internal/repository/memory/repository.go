package memory

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Repository defines the state access supported by the in-memory store.
type Repository interface {
	View(fn func(s *State))
	Update(fn func(s *State) error) error
	Snapshot() State
}

// Store owns the shop State for the lifetime of the process. Every mutation
// runs under the write lock against a working copy that only replaces the live
// state when the callback succeeds.
type Store struct {
	mu     sync.RWMutex
	state  State
	logger *zap.Logger
}

// NewStore validates the initial state and takes ownership of a copy of it.
func NewStore(initial State, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("invalid initial state: %w", err)
	}

	logger.Info("store initialized",
		zap.Int("products", len(initial.Products)),
		zap.Int("inventory_items", len(initial.Inventory)),
		zap.Int("recipe_lines", len(initial.Recipes)))

	return &Store{state: initial.Clone(), logger: logger}, nil
}

// NewSeededStore builds a store holding the opening catalog.
func NewSeededStore(logger *zap.Logger) *Store {
	store, err := NewStore(SeedState(), logger)
	if err != nil {
		// the seed is static; failing here is a programming error
		panic(err)
	}
	return store
}

// View runs fn under the read lock. fn must not mutate or retain the state.
func (s *Store) View(fn func(st *State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// Update runs fn against a working copy of the state and commits it when fn
// returns nil. fn may append to Sales and Notifications but must not modify
// their existing entries.
func (s *Store) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.working()
	if err := fn(&next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Close releases the state. The store must not be used afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.logger.Info("store closed")
}
