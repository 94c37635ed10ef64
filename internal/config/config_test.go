package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brianhealey/assetd/internal/config"
	"github.com/brianhealey/assetd/internal/models"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.ManifestFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFileStore_LoadMissingFile_ReturnsDefault(t *testing.T) {
	store := config.NewFileStore(t.TempDir())

	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	def := models.DefaultManifests()
	if len(m.Images) != len(def.Images) {
		t.Errorf("Load() images = %d, want %d", len(m.Images), len(def.Images))
	}
	if len(m.Sounds) != len(def.Sounds) {
		t.Errorf("Load() sounds = %d, want %d", len(m.Sounds), len(def.Sounds))
	}
}

func TestFileStore_LoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
images:
  office: assets/images/original.png
  cam1: ./assets/images/Cam1.png
sounds:
  ambient: assets/sounds/music.ogg
`)
	m, err := config.NewFileStore(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := m.Images["office"]; got != "assets/images/original.png" {
		t.Errorf("images.office = %q", got)
	}
	if got := m.Images["cam1"]; got != "assets/images/Cam1.png" {
		t.Errorf("images.cam1 = %q, want leading ./ stripped", got)
	}
	if got := m.Sounds["ambient"]; got != "assets/sounds/music.ogg" {
		t.Errorf("sounds.ambient = %q", got)
	}
}

func TestFileStore_LoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	body := `{"images": {"office": "a.png"}, "sounds": {"blip": "b.ogg"}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	store := config.NewFileStoreAt(path)
	if store.Path() != path {
		t.Errorf("Path() = %q, want %q", store.Path(), path)
	}
	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Images["office"] != "a.png" || m.Sounds["blip"] != "b.ogg" {
		t.Errorf("Load() = %+v", m)
	}
}

func TestFileStore_CorruptFile_ReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "images: [unclosed")

	m, err := config.NewFileStore(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil (fallback to defaults)", err)
	}
	if _, ok := m.Images["office"]; !ok {
		t.Error("expected built-in manifests after corrupt file")
	}
}

func TestFileStore_DropsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
images:
  "  office  ": " assets/images/original.png "
  empty: ""
sounds:
  "": assets/sounds/orphan.ogg
  blip: assets/sounds/Blip.ogg
`)
	m, err := config.NewFileStore(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m.Images) != 1 || m.Images["office"] != "assets/images/original.png" {
		t.Errorf("images = %v, want only trimmed office", m.Images)
	}
	if len(m.Sounds) != 1 || m.Sounds["blip"] == "" {
		t.Errorf("sounds = %v, want only blip", m.Sounds)
	}
}

func TestFileStore_EmptySectionsAreNonNil(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "images:\n  office: a.png\n")

	m, err := config.NewFileStore(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Sounds == nil {
		t.Error("Sounds should be an empty map, not nil")
	}
}

func TestMemStore(t *testing.T) {
	in := &models.Manifests{
		Images: models.Manifest{"office": "/assets/images/original.png"},
		Sounds: models.Manifest{"win": "assets/sounds/winmusic.ogg"},
	}
	store := config.NewMemStore(in)
	if store.Path() != ":memory:" {
		t.Errorf("Path() = %q", store.Path())
	}

	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Images["office"] != "assets/images/original.png" {
		t.Errorf("images.office = %q, want leading / stripped", m.Images["office"])
	}

	// The store keeps its own copy.
	in.Sounds["win"] = "changed.ogg"
	m2, _ := store.Load()
	if m2.Sounds["win"] != "assets/sounds/winmusic.ogg" {
		t.Errorf("sounds.win = %q, store shares caller's map", m2.Sounds["win"])
	}
}

func TestMemStore_NilLoadsDefault(t *testing.T) {
	m, err := config.NewMemStore(nil).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Sounds) != 15 {
		t.Errorf("sounds = %d, want 15", len(m.Sounds))
	}
}
