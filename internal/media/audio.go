package media

import "time"

// NetworkState mirrors the media element network states.
type NetworkState int

const (
	NetworkEmpty NetworkState = iota
	NetworkIdle
	NetworkLoading
	NetworkNoSource
)

func (s NetworkState) String() string {
	switch s {
	case NetworkEmpty:
		return "empty"
	case NetworkIdle:
		return "idle"
	case NetworkLoading:
		return "loading"
	case NetworkNoSource:
		return "no_source"
	default:
		return "unknown"
	}
}

// Audio is a playable audio handle. Implementations are safe for concurrent
// use, but callers are expected to serialise commands on a single handle.
type Audio interface {
	// Src returns the current source location, including any query string.
	Src() string
	// SetSrc replaces the source. It does not start loading; call Load.
	SetSrc(src string)
	Loop() bool
	SetLoop(loop bool)
	Volume() float64
	// SetVolume rejects values outside [0, 1] with ErrVolumeRange.
	SetVolume(v float64) error
	CurrentTime() time.Duration
	SetCurrentTime(t time.Duration)
	// Play requests playback. The returned channel yields exactly one value:
	// nil once playback started, or the reason it could not start.
	Play() <-chan error
	Pause()
	Paused() bool
	// Load discards the current resource and fetches the source again.
	Load()
	// Error returns the error of the last load, or nil.
	Error() *MediaError
	NetworkState() NetworkState
}

// AudioFactory creates audio handles. Creating a handle starts loading in the
// background and never blocks on the fetch.
type AudioFactory interface {
	NewAudio(src string) (Audio, error)
}

// Engine is the full media engine contract used by the asset core.
type Engine interface {
	ImageDecoder
	AudioFactory
}
