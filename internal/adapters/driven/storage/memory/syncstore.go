package memory

import (
	"context"
	"sync"

	"github.com/marginote/shelfsync/internal/core/domain"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
)

// Ensure SyncStateStore implements the interface.
var _ driven.SyncStateStore = (*SyncStateStore)(nil)

// SyncStateStore is an in-memory implementation of driven.SyncStateStore.
// Used by tests and by runs that do not want durable cursors.
type SyncStateStore struct {
	mu     sync.RWMutex
	states map[string]domain.SyncState
}

// NewSyncStateStore creates a new in-memory sync state store.
func NewSyncStateStore() *SyncStateStore {
	return &SyncStateStore{
		states: make(map[string]domain.SyncState),
	}
}

// Save stores or overwrites sync state for a book.
func (s *SyncStateStore) Save(_ context.Context, state domain.SyncState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.BookID] = state
	return nil
}

// Get retrieves sync state for a book.
func (s *SyncStateStore) Get(_ context.Context, bookID string) (*domain.SyncState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[bookID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

// List returns all stored sync states.
func (s *SyncStateStore) List(_ context.Context) ([]domain.SyncState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	states := make([]domain.SyncState, 0, len(s.states))
	for _, state := range s.states {
		states = append(states, state)
	}
	return states, nil
}

// Delete removes sync state for a book.
func (s *SyncStateStore) Delete(_ context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, bookID)
	return nil
}
