// Package file provides file-based persistence for the document registry and
// project mapping sidecars.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// Ensure RegistryStore implements the interface.
var _ driven.RegistryStore = (*RegistryStore)(nil)

// Sidecar filenames, fixed so external tooling can consume them.
const (
	registryFile = "document_registry.json"
	mappingFile  = "rfp_response_mapping.json"
)

// RegistryStore persists the document registry and project mapping as JSON
// files in a data directory. The files double as the interchange format for
// the surrounding orchestration tooling, so keys and shapes are stable.
type RegistryStore struct {
	dir string
}

// NewRegistryStore creates a registry store rooted at dir, creating the
// directory if needed.
func NewRegistryStore(dir string) (*RegistryStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".rfplens", "data")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &RegistryStore{dir: dir}, nil
}

// RegistryPath returns the path of the document registry file.
func (s *RegistryStore) RegistryPath() string {
	return filepath.Join(s.dir, registryFile)
}

// MappingPath returns the path of the project mapping file.
func (s *RegistryStore) MappingPath() string {
	return filepath.Join(s.dir, mappingFile)
}

// SaveRegistry writes the document registry.
func (s *RegistryStore) SaveRegistry(_ context.Context, registry map[string]domain.RegistryEntry) error {
	return writeJSON(s.RegistryPath(), registry)
}

// LoadRegistry reads the document registry. A missing file yields an empty
// map, not an error.
func (s *RegistryStore) LoadRegistry(_ context.Context) (map[string]domain.RegistryEntry, error) {
	registry := make(map[string]domain.RegistryEntry)
	if err := readJSON(s.RegistryPath(), &registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// SaveMapping writes the project mapping.
func (s *RegistryStore) SaveMapping(_ context.Context, mapping map[string]domain.ProjectMapping) error {
	return writeJSON(s.MappingPath(), mapping)
}

// LoadMapping reads the project mapping. A missing file yields an empty map,
// not an error.
func (s *RegistryStore) LoadMapping(_ context.Context) (map[string]domain.ProjectMapping, error) {
	mapping := make(map[string]domain.ProjectMapping)
	if err := readJSON(s.MappingPath(), &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// writeJSON writes v atomically via a temp file rename, so a crash mid-write
// never leaves a truncated sidecar.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
