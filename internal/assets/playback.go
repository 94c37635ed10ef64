package assets

import (
	"log/slog"

	"github.com/brianhealey/assetd/internal/models"
)

// PlayOption adjusts a PlaySound call.
type PlayOption func(*playConfig)

type playConfig struct {
	loop   bool
	volume float64
}

// Loop sets whether the sound repeats. Default false.
func Loop(loop bool) PlayOption {
	return func(c *playConfig) { c.loop = loop }
}

// Volume sets the playback volume in [0, 1]. Default 1.
func Volume(v float64) PlayOption {
	return func(c *playConfig) { c.volume = v }
}

// PlaySound starts the sound stored under key from the beginning. A stalled
// handle is reloaded first. Unknown keys are ignored, and a failed start is
// only logged.
func (m *Manager) PlaySound(key string, opts ...PlayOption) {
	s, ok := m.reg.sound(key)
	if !ok {
		return
	}
	cfg := playConfig{volume: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	s.mu.Lock()
	recovered := s.recoverLocked(m.now())
	s.audio.SetLoop(cfg.loop)
	if err := s.audio.SetVolume(cfg.volume); err != nil {
		slog.Warn("assets: volume rejected", "key", key, "volume", cfg.volume, "err", err)
	}
	s.audio.SetCurrentTime(0)
	result := s.audio.Play()
	info := s.infoLocked()
	s.mu.Unlock()

	go awaitStart(key, result)

	if recovered {
		m.publish(models.Event{Type: models.EventSoundRecovered, Key: key, Sound: &info})
	}
	m.publish(models.Event{Type: models.EventSoundPlayed, Key: key, Sound: &info})
}

// StopSound pauses the sound stored under key and rewinds it. Unknown keys
// are ignored.
func (m *Manager) StopSound(key string) {
	s, ok := m.reg.sound(key)
	if !ok {
		return
	}
	s.mu.Lock()
	s.audio.Pause()
	s.audio.SetCurrentTime(0)
	info := s.infoLocked()
	s.mu.Unlock()

	m.publish(models.Event{Type: models.EventSoundStopped, Key: key, Sound: &info})
}

// SetSoundVolume sets the volume of the sound stored under key. Only the
// handle's own range check applies; a rejected value is logged. Unknown keys
// are ignored.
func (m *Manager) SetSoundVolume(key string, volume float64) {
	s, ok := m.reg.sound(key)
	if !ok {
		return
	}
	s.mu.Lock()
	err := s.audio.SetVolume(volume)
	info := s.infoLocked()
	s.mu.Unlock()

	if err != nil {
		slog.Warn("assets: volume rejected", "key", key, "volume", volume, "err", err)
		return
	}
	m.publish(models.Event{Type: models.EventSoundVolume, Key: key, Sound: &info})
}

// awaitStart logs the outcome of a play request.
func awaitStart(key string, result <-chan error) {
	if err := <-result; err != nil {
		slog.Warn("assets: audio play failed", "key", key, "err", err)
	}
}
