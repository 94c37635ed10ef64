package assets

import (
	"sort"
	"sync"

	"github.com/brianhealey/assetd/internal/media"
	"github.com/brianhealey/assetd/internal/models"
)

// ImageAsset is a loaded image.
type ImageAsset struct {
	Key   string
	Image *media.Image
}

// SoundAsset owns a playable handle. mu serialises commands on the handle.
type SoundAsset struct {
	Key string

	mu         sync.Mutex
	audio      media.Audio
	recoveries int
}

// Registry maps keys to loaded assets. Membership is written only by the
// load pass; lookups are safe from any goroutine.
type Registry struct {
	manifests models.Manifests

	mu     sync.RWMutex
	images map[string]*ImageAsset
	sounds map[string]*SoundAsset
	loaded bool
}

// NewRegistry creates an empty registry bound to the given manifests.
func NewRegistry(manifests models.Manifests) *Registry {
	return &Registry{
		manifests: manifests.DeepCopy(),
		images:    make(map[string]*ImageAsset),
		sounds:    make(map[string]*SoundAsset),
	}
}

// Loaded reports whether the load pass has completed.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Image returns the image stored under key. It reports false until the load
// pass has completed.
func (r *Registry) Image(key string) (media.Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return media.Image{}, false
	}
	a, ok := r.images[key]
	if !ok {
		return media.Image{}, false
	}
	return *a.Image, true
}

// ImageKeys returns the keys of all loaded images, sorted. It is empty until
// the load pass has completed.
func (r *Registry) ImageKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return []string{}
	}
	return sortedKeys(r.images)
}

// SoundKeys returns the keys of all loaded sounds, sorted. It is empty until
// the load pass has completed.
func (r *Registry) SoundKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return []string{}
	}
	return sortedKeys(r.sounds)
}

func (r *Registry) sound(key string) (*SoundAsset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return nil, false
	}
	s, ok := r.sounds[key]
	return s, ok
}

// addImage stores img under key. Keys outside the image manifest are refused.
func (r *Registry) addImage(key string, img *media.Image) bool {
	if _, ok := r.manifests.Images[key]; !ok || img == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images[key] = &ImageAsset{Key: key, Image: img}
	return true
}

// addSound stores a under key. Keys outside the sound manifest are refused.
func (r *Registry) addSound(key string, a media.Audio) bool {
	if _, ok := r.manifests.Sounds[key]; !ok || a == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sounds[key] = &SoundAsset{Key: key, audio: a}
	return true
}

func (r *Registry) markLoaded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
