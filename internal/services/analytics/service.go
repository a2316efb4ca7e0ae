// Package analytics fetches the daily-metric aggregate. Unlike the
// usage-event sweep this is a single round trip and is never cached.
package analytics

import (
	"context"

	"github.com/averyn/cursorboard/internal/models"
)

// Fetcher is the slice of the dashboard client the service needs.
type Fetcher interface {
	FetchAnalytics(ctx context.Context, startDate, endDate string) (*models.AnalyticsData, error)
}

// Event represents an analytics service event.
type Event struct {
	Type  EventType
	Gen   int
	Data  *models.AnalyticsData
	Error error
}

// EventType defines the type of analytics event.
type EventType int

const (
	// EventLoaded carries a fresh analytics aggregate.
	EventLoaded EventType = iota
	// EventError indicates the fetch failed.
	EventError
)

// Service fetches analytics on demand.
type Service struct {
	fetcher   Fetcher
	eventChan chan Event
}

// New creates an analytics service.
func New(fetcher Fetcher) *Service {
	return &Service{
		fetcher:   fetcher,
		eventChan: make(chan Event, 20),
	}
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Fetch retrieves the aggregate for a date range. Runs synchronously;
// callers start it in a goroutine.
func (s *Service) Fetch(ctx context.Context, gen int, startDate, endDate string) {
	data, err := s.fetcher.FetchAnalytics(ctx, startDate, endDate)
	if err != nil {
		s.sendEvent(Event{Type: EventError, Gen: gen, Error: err})
		return
	}
	s.sendEvent(Event{Type: EventLoaded, Gen: gen, Data: data})
}

// sendEvent sends an event without blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
	}
}
