package page

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

func testEvent(templateID string) *event.Event {
	return &event.Event{
		ID:         "haldi",
		Title:      "Haldi Ceremony",
		Date:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TemplateID: templateID,
	}
}

func TestRendererDispatch(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	tests := []struct {
		name       string
		templateID string
		marker     string
	}{
		{"classic", event.TemplateClassic, "page-classic"},
		{"editorial", event.TemplateEditorial, "page-editorial"},
		{"noir", event.TemplateNoir, "page-noir"},
		{"empty falls back to classic", "", "page-classic"},
		{"unknown falls back to classic", "baroque", "page-classic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := r.Render(&buf, &Data{Event: testEvent(tt.templateID)})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.marker) {
				t.Fatalf("rendered page missing marker %q", tt.marker)
			}
			if !strings.Contains(buf.String(), "Haldi Ceremony") {
				t.Fatal("rendered page missing event title")
			}
		})
	}
}

func TestRendererIncludesPhotos(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	var buf bytes.Buffer
	err = r.Render(&buf, &Data{
		Event: testEvent(""),
		Photos: []mediastore.Descriptor{
			{SecureURL: "https://cdn.example.com/p1.jpg"},
			{SecureURL: "https://cdn.example.com/p2.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "https://cdn.example.com/p1.jpg") ||
		!strings.Contains(html, "https://cdn.example.com/p2.jpg") {
		t.Fatal("rendered page missing photo URLs")
	}
}

type fakeRegistry struct {
	events map[string]*event.Event
}

func (r *fakeRegistry) GetBySlug(_ context.Context, slug string) (*event.Event, error) {
	e, ok := r.events[slug]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return e, nil
}

type fakeStore struct {
	page *mediastore.QueryPage
	err  error
}

func (s *fakeStore) Query(_ context.Context, _ string, _ string) (*mediastore.QueryPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *fakeStore) Ingest(_ context.Context, _ []byte, _ string, _ mediastore.IngestOptions) (*mediastore.Descriptor, error) {
	return nil, errors.New("not implemented")
}

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Mount("/e", h.Routes())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestServeRendersEventPage(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	registry := &fakeRegistry{events: map[string]*event.Event{"haldi": testEvent("noir")}}
	store := &fakeStore{page: &mediastore.QueryPage{
		Resources: []mediastore.Descriptor{{SecureURL: "https://cdn.example.com/p1.jpg"}},
	}}

	rec := serve(t, NewHandler(registry, store, renderer), "/e/haldi")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "page-noir") {
		t.Fatal("expected noir template")
	}
	if !strings.Contains(rec.Body.String(), "https://cdn.example.com/p1.jpg") {
		t.Fatal("expected photo in page")
	}
}

func TestServeUnknownSlugRenders404(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	registry := &fakeRegistry{events: map[string]*event.Event{}}

	rec := serve(t, NewHandler(registry, &fakeStore{}, renderer), "/e/nope")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "page-not-found") {
		t.Fatal("expected not-found template")
	}
}

func TestServeDegradesOnMediaFailure(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	registry := &fakeRegistry{events: map[string]*event.Event{"haldi": testEvent("")}}
	store := &fakeStore{err: errors.New("search unavailable")}

	rec := serve(t, NewHandler(registry, store, renderer), "/e/haldi")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Photos are on their way") {
		t.Fatal("expected empty-gallery message")
	}
}
