package mediastore

import (
	"context"
	"errors"
	"time"
)

// PageSize is the upper bound on resources returned by a single Query call.
// Callers continue with the returned cursor.
const PageSize = 500

var (
	ErrEmptyFolder = errors.New("folder must not be empty")
)

// Descriptor describes one stored media object. The remote store is the
// system of record; descriptors are never persisted locally.
type Descriptor struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	SecureURL string    `json:"secure_url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Bytes     int64     `json:"bytes"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryPage is one page of descriptors for a folder, ordered by
// descending creation time. NextCursor is empty on the last page.
type QueryPage struct {
	Resources  []Descriptor `json:"resources"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// IngestOptions enumerates transformation directives applied on ingest.
// Dimension caps use limit semantics: downscale only, never upscale.
type IngestOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   string // "auto"
	Format    string // "auto"
}

// DefaultIngestOptions returns the fixed directives used by the upload
// pipeline.
func DefaultIngestOptions() IngestOptions {
	return IngestOptions{
		MaxWidth:  2000,
		MaxHeight: 2000,
		Quality:   "auto",
		Format:    "auto",
	}
}

// Store is the media store adapter contract. Query errors are real
// errors; callers decide whether to degrade (the gallery aggregator
// records them per event) or to propagate (the upload pipeline).
type Store interface {
	// Query returns one page of descriptors for a folder. Pass the
	// previous page's NextCursor to continue; empty cursor starts over.
	Query(ctx context.Context, folder string, cursor string) (*QueryPage, error)

	// Ingest stores an image payload under the folder, applying the
	// transformation directives, and returns its descriptor.
	Ingest(ctx context.Context, payload []byte, folder string, opts IngestOptions) (*Descriptor, error)
}
