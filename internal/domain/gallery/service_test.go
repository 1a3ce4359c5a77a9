package gallery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

type fakeRegistry struct {
	events []*event.Event
	err    error
}

func (f *fakeRegistry) List(ctx context.Context) ([]*event.Event, error) {
	return f.events, f.err
}

type fakeStore struct {
	pages   map[string]*mediastore.QueryPage
	errs    map[string]error
	queried map[string][]string // folder -> cursors seen
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pages:   make(map[string]*mediastore.QueryPage),
		errs:    make(map[string]error),
		queried: make(map[string][]string),
	}
}

func (f *fakeStore) Query(ctx context.Context, folder string, cursor string) (*mediastore.QueryPage, error) {
	f.queried[folder] = append(f.queried[folder], cursor)
	if err := f.errs[folder]; err != nil {
		return nil, err
	}
	if page, ok := f.pages[folder]; ok {
		return page, nil
	}
	return &mediastore.QueryPage{}, nil
}

func (f *fakeStore) Ingest(ctx context.Context, payload []byte, folder string, opts mediastore.IngestOptions) (*mediastore.Descriptor, error) {
	return nil, errors.New("not implemented")
}

func descriptors(prefix string, n int) []mediastore.Descriptor {
	out := make([]mediastore.Descriptor, 0, n)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, mediastore.Descriptor{
			ID:        fmt.Sprintf("%s/%d", prefix, i),
			SecureURL: fmt.Sprintf("https://cdn/%s/%d.jpg", prefix, i),
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestAggregateAllPartialFailure(t *testing.T) {
	registry := &fakeRegistry{events: []*event.Event{
		{ID: "haldi", Title: "Haldi Ceremony"},
		{ID: "wedding", Title: "Wedding Day"},
	}}
	store := newFakeStore()
	store.pages["haldi"] = &mediastore.QueryPage{Resources: descriptors("haldi", 3)}
	store.errs["wedding"] = errors.New("search unavailable")

	album := NewService(registry, store).AggregateAll(context.Background())

	if len(album.Photos) != 3 {
		t.Fatalf("expected exactly 3 photos, got %d", len(album.Photos))
	}
	for _, p := range album.Photos {
		if p.EventID != "haldi" {
			t.Fatalf("expected all photos tagged haldi, got %q", p.EventID)
		}
		if p.EventName != "Haldi Ceremony" {
			t.Fatalf("expected event name annotation, got %q", p.EventName)
		}
	}
	if len(album.FailedEvents) != 1 || album.FailedEvents[0] != "wedding" {
		t.Fatalf("expected wedding in failed events, got %v", album.FailedEvents)
	}
}

func TestAggregateAllLengthIsSumOfPages(t *testing.T) {
	registry := &fakeRegistry{events: []*event.Event{
		{ID: "haldi", Title: "Haldi"},
		{ID: "sangeet", Title: "Sangeet"},
		{ID: "wedding", Title: "Wedding"},
	}}
	store := newFakeStore()
	store.pages["haldi"] = &mediastore.QueryPage{Resources: descriptors("haldi", 2)}
	store.pages["sangeet"] = &mediastore.QueryPage{Resources: descriptors("sangeet", 5)}
	store.pages["wedding"] = &mediastore.QueryPage{Resources: descriptors("wedding", 1)}

	album := NewService(registry, store).AggregateAll(context.Background())

	if len(album.Photos) != 8 {
		t.Fatalf("expected 8 photos, got %d", len(album.Photos))
	}
	if len(album.FailedEvents) != 0 {
		t.Fatalf("expected no failed events, got %v", album.FailedEvents)
	}
}

func TestAggregateAllGroupOrderFollowsRegistry(t *testing.T) {
	registry := &fakeRegistry{events: []*event.Event{
		{ID: "zeta", Title: "Zeta"},
		{ID: "alpha", Title: "Alpha"},
	}}
	store := newFakeStore()
	store.pages["zeta"] = &mediastore.QueryPage{Resources: descriptors("zeta", 2)}
	store.pages["alpha"] = &mediastore.QueryPage{Resources: descriptors("alpha", 2)}

	album := NewService(registry, store).AggregateAll(context.Background())

	wantOrder := []string{"zeta", "zeta", "alpha", "alpha"}
	for i, p := range album.Photos {
		if p.EventID != wantOrder[i] {
			t.Fatalf("photo %d: expected event %q, got %q", i, wantOrder[i], p.EventID)
		}
	}
}

func TestAggregateAllUsesFolderNotID(t *testing.T) {
	registry := &fakeRegistry{events: []*event.Event{
		{ID: "wedding", Title: "Wedding", FolderName: "wedding-2025"},
	}}
	store := newFakeStore()
	store.pages["wedding-2025"] = &mediastore.QueryPage{Resources: descriptors("w", 1)}

	album := NewService(registry, store).AggregateAll(context.Background())

	if len(album.Photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(album.Photos))
	}
	if _, ok := store.queried["wedding-2025"]; !ok {
		t.Fatal("expected query against the explicit folder name")
	}
}

func TestAggregateAllDoesNotFollowCursors(t *testing.T) {
	registry := &fakeRegistry{events: []*event.Event{
		{ID: "wedding", Title: "Wedding"},
	}}
	store := newFakeStore()
	// A full page plus a continuation cursor: the aggregator must stop
	// at the page boundary.
	store.pages["wedding"] = &mediastore.QueryPage{
		Resources:  descriptors("wedding", mediastore.PageSize),
		NextCursor: "more-available",
	}

	album := NewService(registry, store).AggregateAll(context.Background())

	if len(album.Photos) != mediastore.PageSize {
		t.Fatalf("expected truncation at %d, got %d", mediastore.PageSize, len(album.Photos))
	}
	cursors := store.queried["wedding"]
	if len(cursors) != 1 || cursors[0] != "" {
		t.Fatalf("expected a single first-page query, got cursors %v", cursors)
	}
}

func TestAggregateAllRegistryFailure(t *testing.T) {
	registry := &fakeRegistry{err: errors.New("db down")}
	album := NewService(registry, newFakeStore()).AggregateAll(context.Background())

	if album == nil {
		t.Fatal("expected an album, got nil")
	}
	if len(album.Photos) != 0 {
		t.Fatalf("expected empty album, got %d photos", len(album.Photos))
	}
}
