package models

import "time"

// EventType identifies what changed.
type EventType string

const (
	EventLoaded         EventType = "loaded"
	EventSoundPlayed    EventType = "sound_played"
	EventSoundStopped   EventType = "sound_stopped"
	EventSoundVolume    EventType = "sound_volume"
	EventSoundRecovered EventType = "sound_recovered"
)

// Event is published on the event bus and delivered to SSE subscribers.
type Event struct {
	Type   EventType   `json:"type"`
	Time   time.Time   `json:"time"`
	Key    string      `json:"key,omitempty"`
	Sound  *SoundInfo  `json:"sound,omitempty"`
	Report *LoadReport `json:"report,omitempty"`
}
