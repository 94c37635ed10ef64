package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/brianhealey/assetd/internal/assets"
	"github.com/brianhealey/assetd/internal/models"
)

func (h *Handlers) getSounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"sounds": h.assets.Sounds()})
}

func (h *Handlers) getSound(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSound(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handlers) playSound(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.lookupSound(w, r); !ok {
		return
	}
	var req models.PlayRequest
	// An empty body plays with the defaults.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, models.ErrBadRequest("invalid JSON: "+err.Error()))
		return
	}
	var opts []assets.PlayOption
	if req.Loop != nil {
		opts = append(opts, assets.Loop(*req.Loop))
	}
	if req.Volume != nil {
		opts = append(opts, assets.Volume(*req.Volume))
	}
	key := keyParam(r)
	h.assets.PlaySound(key, opts...)
	h.writeSound(w, key)
}

func (h *Handlers) stopSound(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.lookupSound(w, r); !ok {
		return
	}
	key := keyParam(r)
	h.assets.StopSound(key)
	h.writeSound(w, key)
}

func (h *Handlers) setSound(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.lookupSound(w, r); !ok {
		return
	}
	var upd models.SoundUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, models.ErrBadRequest("invalid JSON: "+err.Error()))
		return
	}
	key := keyParam(r)
	if upd.Volume != nil {
		h.assets.SetSoundVolume(key, *upd.Volume)
	}
	h.writeSound(w, key)
}

// lookupSound resolves {key}, writing 409 before loading completes and 404
// for keys with no loaded sound.
func (h *Handlers) lookupSound(w http.ResponseWriter, r *http.Request) (models.SoundInfo, bool) {
	if !h.requireLoaded(w) {
		return models.SoundInfo{}, false
	}
	key := keyParam(r)
	s, ok := h.assets.Sound(key)
	if !ok {
		writeError(w, models.ErrNotFound("sound "+strconv.Quote(key)+" not found"))
		return models.SoundInfo{}, false
	}
	return s, true
}

func (h *Handlers) writeSound(w http.ResponseWriter, key string) {
	s, _ := h.assets.Sound(key)
	writeJSON(w, http.StatusOK, s)
}
