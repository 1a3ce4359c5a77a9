package page

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns page router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{slug}", h.Serve)

	return r
}
