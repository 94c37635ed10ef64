// Package config loads the asset manifests and resolves the service's
// configuration directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/brianhealey/assetd/internal/models"
)

// Store is the interface for reading asset manifests.
type Store interface {
	// Load returns the manifests. Returns DefaultManifests if no file exists.
	Load() (*models.Manifests, error)

	// Path returns the file path used by this store.
	Path() string
}

// DefaultConfigDir returns ~/.config/assetd, or "." when the home directory
// is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "assetd")
}
