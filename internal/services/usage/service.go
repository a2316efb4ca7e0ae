// Package usage runs the paginated usage-event sweep: cache first,
// then the full feed, page by page, with progress events along the way.
package usage

import (
	"context"

	"github.com/averyn/cursorboard/internal/cache"
	"github.com/averyn/cursorboard/internal/dashboard"
	"github.com/averyn/cursorboard/internal/logger"
	"github.com/averyn/cursorboard/internal/models"
)

// Fetcher is the slice of the dashboard client the sweep needs.
type Fetcher interface {
	FetchAllUsageEvents(ctx context.Context, startDate, endDate string, onProgress dashboard.ProgressFunc) ([]models.UsageEvent, error)
}

// Event represents a usage service event. Gen identifies the sweep that
// produced it; consumers discard events from superseded sweeps.
type Event struct {
	Type      EventType
	Gen       int
	Events    []models.UsageEvent
	Progress  dashboard.Progress
	FromCache bool
	Error     error
}

// EventType defines the type of usage event.
type EventType int

const (
	// EventSweepStarted indicates a sweep began hitting the network.
	EventSweepStarted EventType = iota
	// EventProgress carries the accumulated events after a page landed.
	EventProgress
	// EventLoaded carries the complete event list, from cache or network.
	EventLoaded
	// EventError indicates the sweep failed; no partial data is kept.
	EventError
)

// Service owns the event sweep. At most one sweep is in flight per
// generation; a newer generation simply outruns the older one at the
// consumer, which drops stale events by Gen.
type Service struct {
	fetcher   Fetcher
	cache     *cache.EventCache
	eventChan chan Event
}

// New creates a usage service.
func New(fetcher Fetcher, eventCache *cache.EventCache) *Service {
	return &Service{
		fetcher:   fetcher,
		cache:     eventCache,
		eventChan: make(chan Event, 100),
	}
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Sweep loads the event list for a date range. A valid cached snapshot
// short-circuits the network entirely; otherwise the feed is drained
// page by page and the result cached. Runs synchronously; callers
// start it in a goroutine.
func (s *Service) Sweep(ctx context.Context, gen int, startDate, endDate string) {
	if cached := s.cache.Load(); cached != nil {
		logger.Debug("serving usage events from cache", "count", len(cached))
		s.sendEvent(Event{Type: EventLoaded, Gen: gen, Events: cached, FromCache: true})
		return
	}

	s.sendEvent(Event{Type: EventSweepStarted, Gen: gen})

	events, err := s.fetcher.FetchAllUsageEvents(ctx, startDate, endDate,
		func(accumulated []models.UsageEvent, p dashboard.Progress) {
			s.sendEvent(Event{Type: EventProgress, Gen: gen, Events: accumulated, Progress: p})
		})
	if err != nil {
		s.sendEvent(Event{Type: EventError, Gen: gen, Error: err})
		return
	}

	s.cache.Save(events)
	s.sendEvent(Event{Type: EventLoaded, Gen: gen, Events: events})
}

// Invalidate drops the cached snapshot so the next sweep goes to the
// network.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

// sendEvent sends an event without blocking. Progress events are
// best-effort; a full channel drops them rather than stalling the sweep.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
	}
}
