package api

import (
	"context"
	"net/http"

	"github.com/brianhealey/assetd/internal/identity"
	"github.com/brianhealey/assetd/internal/models"
)

func (h *Handlers) getInfo(w http.ResponseWriter, r *http.Request) {
	st := h.assets.State()
	writeJSON(w, http.StatusOK, models.Info{
		Hostname: identity.GetHostname(),
		Version:  h.version,
		Loaded:   st.Loaded,
		Images:   len(st.Images),
		Sounds:   len(st.Sounds),
	})
}

func (h *Handlers) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assets.State())
}

// loadAssets triggers the load pass, or waits for the one already running,
// and returns its report. The pass outlives a disconnected client.
func (h *Handlers) loadAssets(w http.ResponseWriter, r *http.Request) {
	report := h.assets.LoadAssets(context.WithoutCancel(r.Context()))
	writeJSON(w, http.StatusOK, report)
}
