package upload

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns upload router. Guest uploads are unauthenticated; the
// limiter keeps abuse in check.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	return r
}
