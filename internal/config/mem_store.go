package config

import (
	"sync"

	"github.com/brianhealey/assetd/internal/models"
)

// MemStore is an in-memory Store for tests that never touches disk.
type MemStore struct {
	mu        sync.Mutex
	manifests *models.Manifests
}

// NewMemStore returns a store holding m. A nil m loads DefaultManifests.
func NewMemStore(m *models.Manifests) *MemStore {
	s := &MemStore{}
	if m != nil {
		cp := m.DeepCopy()
		s.manifests = &cp
	}
	return s
}

// Load returns a normalised copy of the stored manifests.
func (s *MemStore) Load() (*models.Manifests, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manifests == nil {
		def := models.DefaultManifests()
		return &def, nil
	}
	cp := s.manifests.DeepCopy()
	normalizeManifests(&cp)
	return &cp, nil
}

// Path returns ":memory:" to indicate this is an in-memory store.
func (s *MemStore) Path() string { return ":memory:" }

var _ Store = (*MemStore)(nil)
