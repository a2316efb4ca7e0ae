// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/averyn/cursorboard/internal/cache"
	"github.com/averyn/cursorboard/internal/config"
	"github.com/averyn/cursorboard/internal/dashboard"
	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/logger"
	"github.com/averyn/cursorboard/internal/models"
	"github.com/averyn/cursorboard/internal/services/analytics"
	"github.com/averyn/cursorboard/internal/services/session"
	"github.com/averyn/cursorboard/internal/services/usage"
	"github.com/averyn/cursorboard/internal/transform"
)

type (
	// AnalyticsLoadedEvent is emitted when a fresh analytics aggregate landed.
	AnalyticsLoadedEvent struct {
		Gen  int
		Data *models.AnalyticsData
	}

	// SweepStartedEvent is emitted when the usage-event sweep goes to the
	// network (i.e. the cache missed).
	SweepStartedEvent struct {
		Gen int
	}

	// EventsProgressEvent is emitted after each page of the sweep with
	// the events accumulated so far.
	EventsProgressEvent struct {
		Gen      int
		Events   []models.UsageEvent
		Progress dashboard.Progress
	}

	// EventsLoadedEvent is emitted when the full event list is available.
	EventsLoadedEvent struct {
		Gen       int
		Events    []models.UsageEvent
		FromCache bool
	}

	// TokenChangedEvent is emitted when the session token was replaced.
	TokenChangedEvent struct{}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Source string
		Gen    int
		Error  error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (AnalyticsLoadedEvent) isServiceEvent() {}
func (SweepStartedEvent) isServiceEvent()    {}
func (EventsProgressEvent) isServiceEvent()  {}
func (EventsLoadedEvent) isServiceEvent()    {}
func (TokenChangedEvent) isServiceEvent()    {}
func (ErrorEvent) isServiceEvent()           {}

// queryStart is the fixed lower bound of every fetch. The dashboard has
// no data before Cursor's usage accounting began.
var queryStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Manager orchestrates services and event routing. Each Refresh starts
// a new generation; events from older generations still in flight carry
// their old Gen and are discarded by the UI.
type Manager struct {
	mu           sync.RWMutex
	cfg          *config.Config
	store        cache.Store
	sqlite       *cache.SQLiteStore
	eventCache   *cache.EventCache
	client       *dashboard.Client
	session      *session.Service
	usage        *usage.Service
	analytics    *analytics.Service
	normalizer   *daykey.Normalizer
	eventChan    chan ServiceEvent
	stopChan     chan struct{}
	subscribers  []chan<- ServiceEvent
	gen          int
	cancel       context.CancelFunc
	lastAlertDay string
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:        cfg,
		normalizer: daykey.New(time.Local),
		eventChan:  make(chan ServiceEvent, 100),
		stopChan:   make(chan struct{}),
	}

	var err error
	m.session, err = session.New(cfg.SessionToken, cfg.SessionTokenPath)
	if err != nil {
		return nil, err
	}

	if cfg.CacheDBPath != "" {
		m.sqlite, err = cache.NewSQLiteStore(cfg.CacheDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		m.store = m.sqlite
	} else {
		m.store = cache.NewMemoryStore()
	}

	m.eventCache = cache.NewEventCache(m.store, cfg.EventsCacheTTL)

	m.client = dashboard.New(cfg.APIBaseURL, m.session.Token())
	m.client.SetPageSize(cfg.EventsPageSize)

	m.usage = usage.New(m.client, m.eventCache)
	m.analytics = analytics.New(m.client)

	go m.routeEvents()

	return m, nil
}

// Refresh starts a new fetch generation: one analytics fetch and one
// usage-event sweep, both against the fixed-start / end-of-tomorrow
// range. Any previous generation still in flight is cancelled. Returns
// the new generation number.
func (m *Manager) Refresh() int {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	start, end := m.queryRange(time.Now())

	go m.analytics.Fetch(ctx, gen, start, end)
	go m.usage.Sweep(ctx, gen, start, end)

	return gen
}

// HardRefresh drops the cached event snapshot before refreshing, forcing
// the sweep back to the network.
func (m *Manager) HardRefresh() int {
	m.usage.Invalidate()
	return m.Refresh()
}

// Gen returns the current generation number.
func (m *Manager) Gen() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// queryRange returns the fetch window as millisecond-epoch strings:
// fixed start, through the end of tomorrow in local time so today's
// events are always inside the window.
func (m *Manager) queryRange(now time.Time) (string, string) {
	local := now.In(m.normalizer.Location()).AddDate(0, 0, 1)
	end := time.Date(local.Year(), local.Month(), local.Day(),
		23, 59, 59, int(999*time.Millisecond), m.normalizer.Location())

	return dashboard.EpochString(queryStart), dashboard.EpochString(end)
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.session.Events():
			m.handleSessionEvent(event)

		case event := <-m.usage.Events():
			m.handleUsageEvent(event)

		case event := <-m.analytics.Events():
			m.handleAnalyticsEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleSessionEvent(event session.Event) {
	switch event.Type {
	case session.EventTokenChanged:
		m.client.SetSessionToken(m.session.Token())
		m.broadcast(TokenChangedEvent{})

	case session.EventError:
		m.broadcast(ErrorEvent{Source: "session", Error: event.Error})
	}
}

func (m *Manager) handleUsageEvent(event usage.Event) {
	switch event.Type {
	case usage.EventSweepStarted:
		m.broadcast(SweepStartedEvent{Gen: event.Gen})

	case usage.EventProgress:
		m.broadcast(EventsProgressEvent{
			Gen:      event.Gen,
			Events:   event.Events,
			Progress: event.Progress,
		})

	case usage.EventLoaded:
		m.broadcast(EventsLoadedEvent{
			Gen:       event.Gen,
			Events:    event.Events,
			FromCache: event.FromCache,
		})
		m.checkCostAlert(event.Events)

	case usage.EventError:
		m.broadcast(ErrorEvent{Source: "usage-events", Gen: event.Gen, Error: event.Error})
	}
}

func (m *Manager) handleAnalyticsEvent(event analytics.Event) {
	switch event.Type {
	case analytics.EventLoaded:
		m.broadcast(AnalyticsLoadedEvent{Gen: event.Gen, Data: event.Data})

	case analytics.EventError:
		m.broadcast(ErrorEvent{Source: "analytics", Gen: event.Gen, Error: event.Error})
	}
}

// checkCostAlert raises a desktop notification when today's usage-based
// spend crosses the configured threshold, at most once per day.
func (m *Manager) checkCostAlert(events []models.UsageEvent) {
	threshold := m.cfg.CostAlertCents
	if threshold <= 0 {
		return
	}

	today := m.normalizer.DayOf(time.Now())

	m.mu.Lock()
	alreadyAlerted := m.lastAlertDay == today
	m.mu.Unlock()
	if alreadyAlerted {
		return
	}

	for _, row := range transform.CostByDay(events, m.normalizer) {
		if row.Day != today {
			continue
		}
		if row.Usage >= threshold {
			title := "Cursor usage alert"
			body := fmt.Sprintf("Usage-based spend today is $%.2f", float64(row.Usage)/100)
			if err := beeep.Notify(title, body, ""); err != nil {
				logger.Warn("failed to send cost notification", "error", err)
			}
			m.mu.Lock()
			m.lastAlertDay = today
			m.mu.Unlock()
		}
		return
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Normalizer returns the day-key normalizer all views share. One fixed
// location per run keeps every chart on the same day boundaries.
func (m *Manager) Normalizer() *daykey.Normalizer {
	return m.normalizer
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// HasSessionToken reports whether a session token is currently set.
func (m *Manager) HasSessionToken() bool {
	return m.session.Token() != ""
}

// CacheBackend describes where the event cache lives, for display.
func (m *Manager) CacheBackend() string {
	if m.sqlite != nil {
		return m.cfg.CacheDBPath
	}
	return "in-memory"
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.session.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.sqlite != nil {
		if err := m.sqlite.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
