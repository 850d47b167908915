package memory

import (
	"context"
	"sync"

	"github.com/marginote/shelfsync/internal/core/domain"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
)

// Ensure SyncConfigStore implements the interface.
var _ driven.SyncConfigStore = (*SyncConfigStore)(nil)

// SyncConfigStore is an in-memory implementation of driven.SyncConfigStore.
type SyncConfigStore struct {
	mu     sync.RWMutex
	cfg    domain.SyncConfig
	exists bool
}

// NewSyncConfigStore creates an empty in-memory config store.
// The first run provisions the default configuration into it.
func NewSyncConfigStore() *SyncConfigStore {
	return &SyncConfigStore{}
}

// NewSyncConfigStoreWith creates a store pre-provisioned with cfg.
func NewSyncConfigStoreWith(cfg domain.SyncConfig) *SyncConfigStore {
	return &SyncConfigStore{cfg: cfg, exists: true}
}

// Exists reports whether a configuration has been provisioned.
func (s *SyncConfigStore) Exists(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists, nil
}

// CreateDefault provisions the permissive default configuration.
func (s *SyncConfigStore) CreateDefault(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = domain.DefaultSyncConfig()
	s.exists = true
	return nil
}

// Load reads the current configuration.
func (s *SyncConfigStore) Load(_ context.Context) (domain.SyncConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.exists {
		return domain.SyncConfig{}, domain.ErrNotFound
	}
	return s.cfg, nil
}

// Set replaces the stored configuration. Test helper.
func (s *SyncConfigStore) Set(cfg domain.SyncConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.exists = true
}
