package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wedloom/wedloom-api/internal/pkg/response"
)

// Handler handles gallery HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates gallery handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListAll handles GET /photos
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	album := h.service.AggregateAll(r.Context())
	response.OK(w, album)
}

// Routes returns gallery router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListAll)

	return r
}
