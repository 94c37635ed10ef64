// Package models defines the data structures shared by the asset core,
// the configuration layer and the HTTP API.
package models

import (
	"sort"
	"time"
)

// AssetKind distinguishes the two manifests.
type AssetKind string

const (
	KindImage AssetKind = "image"
	KindSound AssetKind = "sound"
)

// Manifest maps a symbolic asset key to a path relative to the document root.
type Manifest map[string]string

// Keys returns the manifest keys in sorted order.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Manifests holds the image and sound tables. They are independent: the same
// key may appear in both.
type Manifests struct {
	Images Manifest `json:"images" yaml:"images"`
	Sounds Manifest `json:"sounds" yaml:"sounds"`
}

// DeepCopy returns a copy that shares no maps with m.
func (m Manifests) DeepCopy() Manifests {
	cp := Manifests{
		Images: make(Manifest, len(m.Images)),
		Sounds: make(Manifest, len(m.Sounds)),
	}
	for k, v := range m.Images {
		cp.Images[k] = v
	}
	for k, v := range m.Sounds {
		cp.Sounds[k] = v
	}
	return cp
}

// Len returns the total number of entries across both manifests.
func (m Manifests) Len() int { return len(m.Images) + len(m.Sounds) }

// ImageInfo describes a loaded image.
type ImageInfo struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// SoundInfo is a snapshot of a sound handle's mutable state.
type SoundInfo struct {
	Key          string  `json:"key"`
	Src          string  `json:"src"`
	Loop         bool    `json:"loop"`
	Volume       float64 `json:"volume"`
	Position     float64 `json:"position"` // seconds
	Paused       bool    `json:"paused"`
	Health       string  `json:"health"`        // "healthy" | "stalled"
	NetworkState string  `json:"network_state"` // "empty" | "idle" | "loading" | "no_source"
	Error        string  `json:"error,omitempty"`
	Recoveries   int     `json:"recoveries"`
}

// State is the registry as seen by API clients.
type State struct {
	Loaded bool        `json:"loaded"`
	Images []ImageInfo `json:"images"`
	Sounds []SoundInfo `json:"sounds"`
}

// FailedAsset records a manifest entry whose load failed.
type FailedAsset struct {
	Kind     AssetKind `json:"kind"`
	Key      string    `json:"key"`
	Location string    `json:"location"`
	Err      string    `json:"error"`
}

// LoadReport summarises a completed load pass.
type LoadReport struct {
	ID       string        `json:"id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Images   int           `json:"images"`
	Sounds   int           `json:"sounds"`
	Failed   []FailedAsset `json:"failed"`
}

// Info is returned by GET /api/info.
type Info struct {
	Hostname string `json:"hostname"`
	Version  string `json:"version"`
	Loaded   bool   `json:"loaded"`
	Images   int    `json:"images"`
	Sounds   int    `json:"sounds"`
}
