package page

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

// Registry is the subset of the event service the renderer needs.
type Registry interface {
	GetBySlug(ctx context.Context, slug string) (*event.Event, error)
}

// Handler serves rendered event pages
type Handler struct {
	registry Registry
	store    mediastore.Store
	renderer *Renderer
}

// NewHandler creates page handler
func NewHandler(registry Registry, store mediastore.Store, renderer *Renderer) *Handler {
	return &Handler{registry: registry, store: store, renderer: renderer}
}

// Serve handles GET /e/{slug}. A failed media query degrades to an
// empty gallery; the page still renders.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	e, err := h.registry.GetBySlug(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, event.ErrEventNotFound) {
			log.Error().Err(err).Str("slug", slug).Msg("Failed to resolve event")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if err := h.renderer.RenderNotFound(w); err != nil {
			log.Error().Err(err).Msg("Failed to render not-found page")
		}
		return
	}

	var photos []mediastore.Descriptor
	page, err := h.store.Query(r.Context(), e.Folder(), "")
	if err != nil {
		log.Warn().
			Err(err).
			Str("event_id", e.ID).
			Str("folder", e.Folder()).
			Msg("Media query failed, rendering page without photos")
	} else {
		photos = page.Resources
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, &Data{Event: e, Photos: photos}); err != nil {
		log.Error().Err(err).Str("event_id", e.ID).Msg("Failed to render event page")
	}
}
