package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brianhealey/assetd/internal/models"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest file looked up in the config directory.
const ManifestFileName = "assets.yaml"

// FileStore reads manifests from a YAML (or JSON) file:
//
//	images:
//	  office: assets/images/original.png
//	sounds:
//	  ambient: assets/sounds/music.ogg
type FileStore struct {
	path string
}

// NewFileStore creates a store for the manifest in configDir.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{path: filepath.Join(configDir, ManifestFileName)}
}

// NewFileStoreAt creates a store for an explicit manifest path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path used by this store.
func (s *FileStore) Path() string { return s.path }

// Load reads the manifests from disk. Returns DefaultManifests on ENOENT or
// parse errors.
func (s *FileStore) Load() (*models.Manifests, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("config: no manifest file, using built-in manifests", "path", s.path)
			def := models.DefaultManifests()
			return &def, nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", s.path, err)
	}

	var m models.Manifests
	if err := yaml.Unmarshal(data, &m); err != nil {
		slog.Warn("config: corrupt manifest, using built-in manifests", "path", s.path, "err", err)
		def := models.DefaultManifests()
		return &def, nil
	}

	normalizeManifests(&m)
	slog.Debug("config: loaded manifest", "path", s.path, "images", len(m.Images), "sounds", len(m.Sounds))
	return &m, nil
}

var _ Store = (*FileStore)(nil)
