package gallery

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

// Photo is a media descriptor annotated with the event it belongs to.
// Constructed transiently per aggregation; never persisted.
type Photo struct {
	mediastore.Descriptor
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
}

// Album is the flattened aggregation result. FailedEvents lists events
// whose media query failed, so callers can tell "no photos" apart from
// "query failed" per event.
type Album struct {
	Photos       []Photo  `json:"photos"`
	FailedEvents []string `json:"failed_events,omitempty"`
}

// Registry is the subset of the event service the aggregator needs.
type Registry interface {
	List(ctx context.Context) ([]*event.Event, error)
}

// Service aggregates photos across every event's folder.
type Service struct {
	registry Registry
	store    mediastore.Store
}

// NewService creates gallery service
func NewService(registry Registry, store mediastore.Store) *Service {
	return &Service{registry: registry, store: store}
}

type eventResult struct {
	page *mediastore.QueryPage
	err  error
}

// AggregateAll fetches one page of photos per event, concurrently, and
// flattens them into a single album. Group order follows registry
// enumeration order; within a group the store's newest-first order is
// kept. Cursors are not followed: an event with more resources than one
// page is truncated at the page boundary. The method itself never
// fails; per-event failures degrade to empty groups and are recorded.
func (s *Service) AggregateAll(ctx context.Context) *Album {
	events, err := s.registry.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events for aggregation")
		return &Album{Photos: []Photo{}}
	}

	// One result slot per event; no shared mutable state across the
	// fan-out goroutines.
	results := make([]eventResult, len(events))

	var wg sync.WaitGroup
	for i, e := range events {
		wg.Add(1)
		go func(i int, folder string) {
			defer wg.Done()
			page, err := s.store.Query(ctx, folder, "")
			results[i] = eventResult{page: page, err: err}
		}(i, e.Folder())
	}
	wg.Wait()

	album := &Album{Photos: []Photo{}}
	for i, e := range events {
		res := results[i]
		if res.err != nil {
			log.Warn().
				Err(res.err).
				Str("event_id", e.ID).
				Str("folder", e.Folder()).
				Msg("Media query failed, event contributes no photos")
			album.FailedEvents = append(album.FailedEvents, e.ID)
			continue
		}
		for _, d := range res.page.Resources {
			album.Photos = append(album.Photos, Photo{
				Descriptor: d,
				EventID:    e.ID,
				EventName:  e.Title,
			})
		}
	}

	return album
}
