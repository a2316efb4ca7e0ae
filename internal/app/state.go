// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/averyn/cursorboard/internal/dashboard"
	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
	"github.com/averyn/cursorboard/internal/transform"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// Views holds everything the tabs render, recomputed whenever the raw
// data changes so the render path never aggregates.
type Views struct {
	RequestsCalendar []models.CalendarDay
	AcceptedCalendar []models.CalendarDay
	WeekdayStats     []models.WeekdayStat
	Last7Days        models.Last7DaysSeries
	TokensByDay      []models.BarChartRow
	CostByDay        []models.BarChartRow
}

// State is the shared application state. The two data sources load and
// fail independently: an analytics error never blanks the usage charts
// and vice versa. Gen tracks the current fetch generation; results
// stamped with an older generation are discarded before they get here.
type State struct {
	mu sync.RWMutex

	gen int

	analytics    *models.AnalyticsData
	analyticsErr error

	events        []models.UsageEvent
	eventsErr     error
	progress      dashboard.Progress
	fromCache     bool
	sweepComplete bool

	loadingAnalytics bool
	loadingEvents    bool

	views Views

	normalizer *daykey.Normalizer
	windowDays int
	now        func() time.Time

	lastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates application state. The normalizer fixes the day
// boundaries every derived view uses for the whole run.
func NewState(n *daykey.Normalizer, windowDays int) *State {
	return &State{
		normalizer: n,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// Gen returns the current fetch generation.
func (s *State) Gen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// BeginGeneration resets per-fetch state for a new generation. Existing
// data stays on screen until fresh data replaces it.
func (s *State) BeginGeneration(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen = gen
	s.analyticsErr = nil
	s.eventsErr = nil
	s.progress = dashboard.Progress{}
	s.fromCache = false
	s.sweepComplete = false
	s.loadingAnalytics = true
	s.loadingEvents = true
}

// Stale reports whether a result generation has been superseded.
func (s *State) Stale(gen int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen < s.gen
}

// SetAnalytics installs a fresh analytics aggregate and recomputes the
// views derived from it.
func (s *State) SetAnalytics(data *models.AnalyticsData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analytics = data
	s.analyticsErr = nil
	s.loadingAnalytics = false
	s.lastUpdated = s.now()
	s.recomputeAnalyticsViews()
}

// SetAnalyticsError records an analytics failure. Previously loaded
// analytics data is kept.
func (s *State) SetAnalyticsError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyticsErr = err
	s.loadingAnalytics = false
}

// SetEventsProgress installs a partial event list mid-sweep so the
// charts fill in as pages land.
func (s *State) SetEventsProgress(events []models.UsageEvent, p dashboard.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = events
	s.progress = p
	s.recomputeEventViews()
}

// SetEvents installs the complete event list.
func (s *State) SetEvents(events []models.UsageEvent, fromCache bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = events
	s.eventsErr = nil
	s.fromCache = fromCache
	s.sweepComplete = true
	s.loadingEvents = false
	s.progress = dashboard.Progress{Fetched: len(events), Total: len(events)}
	s.lastUpdated = s.now()
	s.recomputeEventViews()
}

// SetEventsError records a sweep failure. The sweep has no partial
// result path, so whatever events an earlier generation loaded stay.
func (s *State) SetEventsError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventsErr = err
	s.loadingEvents = false
}

func (s *State) recomputeAnalyticsViews() {
	if s.analytics == nil {
		return
	}
	s.views.RequestsCalendar = transform.AgentRequestsCalendar(s.analytics, s.normalizer)
	s.views.AcceptedCalendar = transform.AcceptedLinesCalendar(s.analytics, s.normalizer)
	s.views.WeekdayStats = transform.WeekdayDistribution(s.analytics, s.normalizer)
	s.views.Last7Days = transform.Last7Days(s.analytics, s.normalizer, s.now())
}

func (s *State) recomputeEventViews() {
	cutoff := transform.WindowStart(s.normalizer, s.now(), s.windowDays)
	windowed := transform.EventsSince(s.events, s.normalizer, cutoff)
	s.views.TokensByDay = transform.TokensByDay(windowed, s.normalizer)
	s.views.CostByDay = transform.CostByDay(windowed, s.normalizer)
}

// GetViews returns the current derived views.
func (s *State) GetViews() Views {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views
}

// GetAnalytics returns the current analytics aggregate, or nil.
func (s *State) GetAnalytics() *models.AnalyticsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analytics
}

// GetEvents returns the current event list. Callers must not mutate it.
func (s *State) GetEvents() []models.UsageEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

// GetProgress returns sweep progress plus whether the sweep finished.
func (s *State) GetProgress() (dashboard.Progress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress, s.sweepComplete
}

// FromCache reports whether the current events came from the cache.
func (s *State) FromCache() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fromCache
}

// AnalyticsError returns the analytics-path error, if any.
func (s *State) AnalyticsError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyticsErr
}

// EventsError returns the sweep-path error, if any.
func (s *State) EventsError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eventsErr
}

// AnyLoading returns true if either data source is still loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingAnalytics || s.loadingEvents
}

// LoadingAnalytics reports whether the analytics fetch is in flight.
func (s *State) LoadingAnalytics() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingAnalytics
}

// LoadingEvents reports whether the event sweep is in flight.
func (s *State) LoadingEvents() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingEvents
}

// GetLastUpdated returns the last time data landed.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}
