package api

import (
	"net/http"

	"github.com/brianhealey/assetd/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and returns the main HTTP router.
func NewRouter(a Assets, authSvc *auth.Service, bus EventBus, version string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(middleware.CleanPath)

	h := newHandlers(a, bus, version)

	// Discovery (no auth required)
	r.Get("/api/info", h.getInfo)

	// API routes (auth required)
	r.Group(func(r chi.Router) {
		r.Use(authSvc.Middleware)

		// Registry state
		r.Get("/api", h.getState)
		r.Get("/api/", h.getState)
		r.Post("/api/load", h.loadAssets)

		// Images
		r.Get("/api/images", h.getImages)
		r.Get("/api/images/{key}", h.getImage)

		// Sounds
		r.Get("/api/sounds", h.getSounds)
		r.Get("/api/sounds/{key}", h.getSound)
		r.Patch("/api/sounds/{key}", h.setSound)
		r.Post("/api/sounds/{key}/play", h.playSound)
		r.Post("/api/sounds/{key}/stop", h.stopSound)

		// SSE
		r.Get("/api/subscribe", h.sseEvents)
	})

	return r
}

// corsMiddleware adds permissive CORS headers so browser games on other
// origins can reach the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, api-key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
