// Package api implements the HTTP REST API for the asset service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/brianhealey/assetd/internal/assets"
	"github.com/brianhealey/assetd/internal/media"
	"github.com/brianhealey/assetd/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	assets   Assets
	events   EventBus
	version  string
	previews *cache.Cache
}

// Assets is the interface the handlers use to reach the asset registry.
// *assets.Manager implements it.
type Assets interface {
	State() models.State
	Loaded() bool
	LoadAssets(ctx context.Context) models.LoadReport
	Image(key string) (media.Image, bool)
	ImageInfos() []models.ImageInfo
	ImageInfo(key string) (models.ImageInfo, bool)
	Sounds() []models.SoundInfo
	Sound(key string) (models.SoundInfo, bool)
	PlaySound(key string, opts ...assets.PlayOption)
	StopSound(key string)
	SetSoundVolume(key string, volume float64)
}

// EventBus is the interface for subscribing to asset events.
type EventBus interface {
	Subscribe(id string) <-chan models.Event
	Unsubscribe(id string)
}

func newHandlers(a Assets, bus EventBus, version string) *Handlers {
	return &Handlers{
		assets:   a,
		events:   bus,
		version:  version,
		previews: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an AppError as a JSON response.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if appErr, ok := err.(*models.AppError); ok {
		w.WriteHeader(appErr.Status)
		_ = json.NewEncoder(w).Encode(appErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.ErrInternal(err.Error()))
}

// keyParam reads the {key} path parameter.
func keyParam(r *http.Request) string {
	return chi.URLParam(r, "key")
}

// requireLoaded writes 409 and returns false while the load pass is running.
func (h *Handlers) requireLoaded(w http.ResponseWriter) bool {
	if h.assets.Loaded() {
		return true
	}
	writeError(w, models.ErrNotLoaded)
	return false
}
