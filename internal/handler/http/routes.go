package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLogger)
	router.Use(h.withLogging)

	// device registration authenticates with the account token, not a
	// session token
	router.Group(func(r chi.Router) {
		r.Post("/api/device/register", h.registerDevice)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Post("/api/zone/", h.ensureZone)
		r.Post("/api/records/push", h.push)
		r.Get("/api/records/changes", h.changes)
		r.Get("/api/devices", h.devices)
	})

	return router
}
