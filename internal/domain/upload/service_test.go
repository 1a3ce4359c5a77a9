package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"testing"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

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
	lastFolder string
	lastOpts   mediastore.IngestOptions
	lastBytes  []byte
	err        error
}

func (s *fakeStore) Query(_ context.Context, _ string, _ string) (*mediastore.QueryPage, error) {
	return &mediastore.QueryPage{}, nil
}

func (s *fakeStore) Ingest(_ context.Context, payload []byte, folder string, opts mediastore.IngestOptions) (*mediastore.Descriptor, error) {
	s.lastFolder = folder
	s.lastOpts = opts
	s.lastBytes = payload
	if s.err != nil {
		return nil, s.err
	}
	return &mediastore.Descriptor{ID: folder + "/p1"}, nil
}

type fakePublisher struct {
	eventID string
	d       *mediastore.Descriptor
}

func (p *fakePublisher) PublishPhoto(eventID string, d *mediastore.Descriptor) {
	p.eventID = eventID
	p.d = d
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func newTestService(store mediastore.Store, publisher Publisher) *Service {
	registry := &fakeRegistry{events: map[string]*event.Event{
		"haldi": {ID: "haldi", Title: "Haldi"},
	}}
	return NewService(registry, store, nil, publisher)
}

func TestUploadFolderTargeting(t *testing.T) {
	t.Run("with user the folder is userID/eventID", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(store, nil)

		_, err := svc.Upload(context.Background(), jpegBytes(t, 100, 100), "haldi", "guest-7")
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
		if store.lastFolder != "guest-7/haldi" {
			t.Fatalf("folder = %q, want %q", store.lastFolder, "guest-7/haldi")
		}
	})

	t.Run("without user the folder is the event id", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(store, nil)

		_, err := svc.Upload(context.Background(), jpegBytes(t, 100, 100), "haldi", "")
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
		if store.lastFolder != "haldi" {
			t.Fatalf("folder = %q, want %q", store.lastFolder, "haldi")
		}
	})
}

func TestUploadUnknownEvent(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil)

	_, err := svc.Upload(context.Background(), jpegBytes(t, 10, 10), "no-such-event", "")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("Upload() error = %v, want ErrEventNotFound", err)
	}
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil)

	raw := make([]byte, MaxUploadSize+1)
	_, err := svc.Upload(context.Background(), raw, "haldi", "")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Upload() error = %v, want ErrFileTooLarge", err)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil)

	_, err := svc.Upload(context.Background(), []byte("not an image"), "haldi", "")
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("Upload() error = %v, want ErrInvalidImage", err)
	}
}

func TestUploadDirectivesCarryFixedCaps(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	_, err := svc.Upload(context.Background(), jpegBytes(t, 100, 100), "haldi", "")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	want := mediastore.DefaultIngestOptions()
	if store.lastOpts != want {
		t.Fatalf("opts = %+v, want %+v", store.lastOpts, want)
	}
}

func TestUploadDownscalesOversizedImage(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	_, err := svc.Upload(context.Background(), jpegBytes(t, 3000, 1500), "haldi", "")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(store.lastBytes))
	if err != nil {
		t.Fatalf("decode ingested payload: %v", err)
	}
	if img.Bounds().Dx() > 2000 || img.Bounds().Dy() > 2000 {
		t.Fatalf("ingested %dx%d, want within 2000x2000", img.Bounds().Dx(), img.Bounds().Dy())
	}
	// Aspect ratio is preserved; 3000x1500 fits to 2000x1000.
	if img.Bounds().Dx() != 2000 || img.Bounds().Dy() != 1000 {
		t.Fatalf("ingested %dx%d, want 2000x1000", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestUploadNeverUpscales(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	raw := jpegBytes(t, 640, 480)
	_, err := svc.Upload(context.Background(), raw, "haldi", "")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !bytes.Equal(store.lastBytes, raw) {
		t.Fatal("small image was re-encoded, want pass-through")
	}
}

func TestUploadPropagatesIngestFailure(t *testing.T) {
	ingestErr := errors.New("media upload http error: status=500")
	store := &fakeStore{err: ingestErr}
	svc := newTestService(store, nil)

	_, err := svc.Upload(context.Background(), jpegBytes(t, 10, 10), "haldi", "")
	if err == nil {
		t.Fatal("Upload() error = nil, want ingest failure")
	}
	if !errors.Is(err, ingestErr) {
		t.Fatalf("Upload() error = %v, want wrapped %v", err, ingestErr)
	}
}

func TestUploadPublishesDescriptor(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(&fakeStore{}, pub)

	d, err := svc.Upload(context.Background(), jpegBytes(t, 10, 10), "haldi", "guest-1")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if pub.eventID != "haldi" {
		t.Fatalf("published event = %q, want %q", pub.eventID, "haldi")
	}
	if pub.d != d {
		t.Fatal("published descriptor differs from returned one")
	}
}
