package event

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns public event routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{slug}", h.Get)

	return r
}

// AdminRoutes returns event routes for the administrative update path
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Post("/", h.Create)
	r.Put("/{slug}", h.Update)

	return r
}
