// Package assets is the asset core: it resolves manifest paths, runs the
// one-time load pass into a Registry and controls sound playback by key.
package assets

import (
	"sync"
	"time"

	"github.com/brianhealey/assetd/internal/media"
	"github.com/brianhealey/assetd/internal/models"
)

// defaultWorkers bounds concurrent asset loads.
const defaultWorkers = 8

// Publisher receives asset events. A nil Publisher drops them.
type Publisher interface {
	Publish(ev models.Event)
}

// Manager owns the Registry and is the only way callers reach sound handles.
// All exported methods are safe to call concurrently.
type Manager struct {
	reg       *Registry
	manifests models.Manifests
	engine    media.Engine
	bus       Publisher
	workers   int
	now       func() time.Time

	loadOnce sync.Once
	report   models.LoadReport
}

// Option configures a Manager.
type Option func(*Manager)

// WithWorkers sets how many assets load at once. n < 1 keeps the default.
func WithWorkers(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithClock overrides the clock used for cache tokens and event times.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithPublisher sends asset events to p.
func WithPublisher(p Publisher) Option {
	return func(m *Manager) { m.bus = p }
}

// New creates a Manager with an empty Registry for the given manifests.
func New(engine media.Engine, manifests models.Manifests, opts ...Option) *Manager {
	m := &Manager{
		reg:       NewRegistry(manifests),
		manifests: manifests.DeepCopy(),
		engine:    engine,
		workers:   defaultWorkers,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry exposes the underlying registry for read-only lookups.
func (m *Manager) Registry() *Registry { return m.reg }

// Loaded reports whether the load pass has completed.
func (m *Manager) Loaded() bool { return m.reg.Loaded() }

// Image returns the decoded image stored under key once loading completed.
func (m *Manager) Image(key string) (media.Image, bool) { return m.reg.Image(key) }

// ImageInfos describes every loaded image, sorted by key.
func (m *Manager) ImageInfos() []models.ImageInfo {
	keys := m.reg.ImageKeys()
	out := make([]models.ImageInfo, 0, len(keys))
	for _, k := range keys {
		if info, ok := m.ImageInfo(k); ok {
			out = append(out, info)
		}
	}
	return out
}

// ImageInfo describes the image stored under key.
func (m *Manager) ImageInfo(key string) (models.ImageInfo, bool) {
	img, ok := m.reg.Image(key)
	if !ok {
		return models.ImageInfo{}, false
	}
	w, h := img.Size()
	return models.ImageInfo{Key: key, Location: img.Location, Format: img.Format, Width: w, Height: h}, true
}

// Sounds returns a snapshot of every loaded sound, sorted by key.
func (m *Manager) Sounds() []models.SoundInfo {
	keys := m.reg.SoundKeys()
	out := make([]models.SoundInfo, 0, len(keys))
	for _, k := range keys {
		if info, ok := m.Sound(k); ok {
			out = append(out, info)
		}
	}
	return out
}

// Sound returns a snapshot of the sound stored under key.
func (m *Manager) Sound(key string) (models.SoundInfo, bool) {
	s, ok := m.reg.sound(key)
	if !ok {
		return models.SoundInfo{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infoLocked(), true
}

// State returns the registry as seen by API clients.
func (m *Manager) State() models.State {
	return models.State{
		Loaded: m.reg.Loaded(),
		Images: m.ImageInfos(),
		Sounds: m.Sounds(),
	}
}

func (m *Manager) publish(ev models.Event) {
	if m.bus == nil {
		return
	}
	ev.Time = m.now()
	m.bus.Publish(ev)
}

func (s *SoundAsset) infoLocked() models.SoundInfo {
	a := s.audio
	info := models.SoundInfo{
		Key:          s.Key,
		Src:          a.Src(),
		Loop:         a.Loop(),
		Volume:       a.Volume(),
		Position:     a.CurrentTime().Seconds(),
		Paused:       a.Paused(),
		Health:       assess(a).String(),
		NetworkState: a.NetworkState().String(),
		Recoveries:   s.recoveries,
	}
	if err := a.Error(); err != nil {
		info.Error = err.Error()
	}
	return info
}
