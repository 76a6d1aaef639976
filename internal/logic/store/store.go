// Package store owns the canonical cluster state. Every read goes
// through Snapshot and every mutation through ApplyTick or
// ApplyCommandEffect, so there is never more than one writer at a time.
package store

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger
	state  cluster.State
}

// New creates a store seeded with the fixed demo roster. The rand
// source drives IP assignment, initial usage and connection wiring;
// pass a fixed-seed source for reproducible clusters.
func New(logger *slog.Logger, rng *rand.Rand) *Store {
	s := &Store{
		logger: logger,
		state:  seedState(rng),
	}

	logger.Info("cluster store initialized",
		"pods", len(s.state.Pods),
		"namespaces", len(s.state.Namespaces),
	)

	return s
}

// Snapshot returns an independent deep copy of the current state.
// Returned snapshots never share mutable substructures with the store
// or with each other.
func (s *Store) Snapshot() cluster.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// ApplyTick runs the simulator's mutation against the live state.
func (s *Store) ApplyTick(fn func(*cluster.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
}

// ApplyCommandEffect runs a command side effect against the live state.
// The current command set is read-only; this is the mutation path a
// future delete/scale verb would use.
func (s *Store) ApplyCommandEffect(fn func(*cluster.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
}
