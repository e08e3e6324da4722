package statestore

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/journal"
	"github.com/AntonStoeckl/booklending/shell"
)

// Store implements the StateStore interfaces of the command feature slices.
type Store struct {
	mu               sync.Mutex
	state            core.State
	version          uint
	committed        core.DomainEvents
	metadata         []shell.EventMetadata
	pendingConflicts int
	commitCalls      int
}

// New creates a Store whose state results from the given events. They do not count as committed.
func New(t testing.TB, history ...core.DomainEvent) *Store {
	t.Helper()

	state := core.NewState()
	require.NoError(t, state.Evolve(history...))

	return &Store{state: state, version: uint(len(history))}
}

// FailNextCommits makes the next n commits fail with journal.ErrConcurrencyConflict.
// Each failed commit also bumps the version, as a concurrent writer would.
func (s *Store) FailNextCommits(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingConflicts = n
}

// CurrentState returns a copy of the state and its version.
func (s *Store) CurrentState(ctx context.Context) (core.State, uint, error) {
	if err := ctx.Err(); err != nil {
		return core.State{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone(), s.version, nil
}

// Commit applies events if expectedVersion is current.
func (s *Store) Commit(ctx context.Context, expectedVersion uint, events core.DomainEvents, metadata shell.EventMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.commitCalls++

	if s.pendingConflicts > 0 {
		s.pendingConflicts--
		s.version++
		return journal.ErrConcurrencyConflict
	}

	if expectedVersion != s.version {
		return journal.ErrConcurrencyConflict
	}

	next := s.state.Clone()
	if err := next.Evolve(events...); err != nil {
		return err
	}

	s.state = next
	s.version += uint(len(events))
	s.committed = append(s.committed, events...)
	s.metadata = append(s.metadata, metadata)

	return nil
}

// Committed returns all events committed through the Store.
func (s *Store) Committed() core.DomainEvents {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.committed)
}

// Metadata returns the metadata of every successful commit.
func (s *Store) Metadata() []shell.EventMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.metadata)
}

// CommitCalls returns how often Commit was called, including failed attempts.
func (s *Store) CommitCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitCalls
}

// State returns a copy of the current state.
func (s *Store) State() core.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}
