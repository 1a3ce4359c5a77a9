package event

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wedloom/wedloom-api/internal/pkg/response"
	"github.com/wedloom/wedloom-api/internal/pkg/validator"
)

// Handler handles event HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates event handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /events/{slug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	e, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, "Event not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, e)
}

// List handles GET /events
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, events)
}

// Create handles POST /admin/events
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	e, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEventExists) {
			response.Error(w, http.StatusConflict, "EVENT_EXISTS", "An event with this slug already exists")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, e)
}

// Update handles PUT /admin/events/{slug}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	e, err := h.service.Update(r.Context(), slug, &req)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, "Event not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, e)
}
