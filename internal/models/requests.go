package models

// PlayRequest is the POST body for /api/sounds/{key}/play.
// Omitted fields take the playback defaults (no loop, full volume).
type PlayRequest struct {
	Loop   *bool    `json:"loop,omitempty"`
	Volume *float64 `json:"volume,omitempty"`
}

// SoundUpdate is the PATCH body for /api/sounds/{key}.
type SoundUpdate struct {
	Volume *float64 `json:"volume,omitempty"`
}
