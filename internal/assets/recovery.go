package assets

import (
	"log/slog"
	"time"

	"github.com/brianhealey/assetd/internal/media"
)

// Health is the load health of a sound handle.
type Health int

const (
	Healthy Health = iota
	// Stalled means the handle's current source failed to load or decode.
	Stalled
)

func (h Health) String() string {
	if h == Stalled {
		return "stalled"
	}
	return "healthy"
}

// assess reads the handle's error and network state.
func assess(a media.Audio) Health {
	if a.Error() != nil || a.NetworkState() == media.NetworkNoSource {
		return Stalled
	}
	return Healthy
}

// transition is the health state machine. A stalled handle asked to play is
// reloaded and considered healthy again; nothing else changes state.
func transition(h Health, playRequested bool) (next Health, reload bool) {
	if h == Stalled && playRequested {
		return Healthy, true
	}
	return h, false
}

// recoverLocked repairs a stalled handle in place: the source gets a fresh
// cache token and the handle reloads. It reports whether a reload happened.
// The caller holds s.mu.
func (s *SoundAsset) recoverLocked(now time.Time) bool {
	h := assess(s.audio)
	next, reload := transition(h, true)
	if !reload {
		return false
	}
	old := s.audio.Src()
	s.audio.SetSrc(withToken(old, now))
	s.audio.Load()
	s.recoveries++
	slog.Debug("assets: reloaded stalled sound", "key", s.Key, "from", h, "to", next, "src", s.audio.Src())
	return true
}
