package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

// MaxUploadSize in bytes (10MB)
const MaxUploadSize = 10 * 1024 * 1024

// Registry is the subset of the event service the pipeline needs.
type Registry interface {
	GetBySlug(ctx context.Context, slug string) (*event.Event, error)
}

// Publisher receives descriptors of freshly ingested photos. Used by
// the live slideshow hub; nil disables publishing.
type Publisher interface {
	PublishPhoto(eventID string, d *mediastore.Descriptor)
}

// Service handles upload business logic. Unlike the gallery aggregator,
// which degrades on media store failures, every failure here propagates
// to the caller: reads degrade, writes report.
type Service struct {
	registry  Registry
	store     mediastore.Store
	limiter   *Limiter
	publisher Publisher
}

// NewService creates upload service
func NewService(registry Registry, store mediastore.Store, limiter *Limiter, publisher Publisher) *Service {
	return &Service{
		registry:  registry,
		store:     store,
		limiter:   limiter,
		publisher: publisher,
	}
}

// Upload validates the payload and forwards it to the media store with
// fixed transformation directives. The target folder is
// "userID/eventID" when a user identifier is supplied, else "eventID".
// No retries.
func (s *Service) Upload(ctx context.Context, raw []byte, eventID, userID string) (*mediastore.Descriptor, error) {
	e, err := s.registry.GetBySlug(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if int64(len(raw)) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	uploader := userID
	if uploader == "" {
		uploader = "anonymous"
	}
	if err := s.limiter.Allow(ctx, uploader, e.ID); err != nil {
		return nil, err
	}

	opts := mediastore.DefaultIngestOptions()
	raw, err = downscale(raw, opts.MaxWidth, opts.MaxHeight)
	if err != nil {
		return nil, ErrInvalidImage
	}

	folder := e.ID
	if userID != "" {
		folder = userID + "/" + e.ID
	}

	d, err := s.store.Ingest(ctx, raw, folder, opts)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}

	if s.publisher != nil {
		s.publisher.PublishPhoto(e.ID, d)
	}

	return d, nil
}

// downscale re-encodes images that exceed the caps, fitting them within
// maxWidth x maxHeight while preserving aspect ratio. Smaller images
// pass through untouched; there is no upscaling.
func downscale(raw []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if width <= maxWidth && height <= maxHeight {
		return raw, nil
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
