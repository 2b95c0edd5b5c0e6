package memory

import (
	"context"
	"sync"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// Ensure RegistryStore implements the interface.
var _ driven.RegistryStore = (*RegistryStore)(nil)

// RegistryStore is an in-memory implementation of driven.RegistryStore.
type RegistryStore struct {
	mu       sync.RWMutex
	registry map[string]domain.RegistryEntry
	mapping  map[string]domain.ProjectMapping
}

// NewRegistryStore creates a new in-memory registry store.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{
		registry: make(map[string]domain.RegistryEntry),
		mapping:  make(map[string]domain.ProjectMapping),
	}
}

// SaveRegistry writes the document registry.
func (s *RegistryStore) SaveRegistry(_ context.Context, registry map[string]domain.RegistryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = cloneRegistry(registry)
	return nil
}

// LoadRegistry reads the document registry.
func (s *RegistryStore) LoadRegistry(_ context.Context) (map[string]domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRegistry(s.registry), nil
}

// SaveMapping writes the project mapping.
func (s *RegistryStore) SaveMapping(_ context.Context, mapping map[string]domain.ProjectMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping = cloneMapping(mapping)
	return nil
}

// LoadMapping reads the project mapping.
func (s *RegistryStore) LoadMapping(_ context.Context) (map[string]domain.ProjectMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMapping(s.mapping), nil
}

func cloneRegistry(m map[string]domain.RegistryEntry) map[string]domain.RegistryEntry {
	out := make(map[string]domain.RegistryEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneMapping(m map[string]domain.ProjectMapping) map[string]domain.ProjectMapping {
	out := make(map[string]domain.ProjectMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
