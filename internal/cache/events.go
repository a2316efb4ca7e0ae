package cache

import (
	"encoding/json"
	"time"

	"github.com/averyn/cursorboard/internal/logger"
	"github.com/averyn/cursorboard/internal/models"
)

const (
	// EventsKey is the single namespaced key the snapshot lives under.
	// No other component touches this key.
	EventsKey = "cursorboard/usage-events/v1"

	// EventsTTL is how long a snapshot stays valid after capture.
	EventsTTL = time.Hour
)

// EventCache reads and writes the usage-event snapshot. Load never
// fails: a missing, malformed or expired snapshot is simply a miss.
type EventCache struct {
	store Store
	key   string
	ttl   time.Duration
	now   func() time.Time
}

// NewEventCache creates an event cache on top of a store. A zero ttl
// means the default one-hour TTL.
func NewEventCache(store Store, ttl time.Duration) *EventCache {
	if ttl <= 0 {
		ttl = EventsTTL
	}
	return &EventCache{
		store: store,
		key:   EventsKey,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Load returns the cached event list, or nil when there is no valid
// snapshot. Deserialization failures are treated as a miss.
func (c *EventCache) Load() []models.UsageEvent {
	raw, ok := c.store.Get(c.key)
	if !ok {
		return nil
	}

	var snapshot models.CachedEventSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Debug("discarding malformed event snapshot", "error", err)
		return nil
	}

	age := c.now().UnixMilli() - snapshot.Timestamp
	if age >= c.ttl.Milliseconds() {
		return nil
	}

	return snapshot.Events
}

// Save overwrites the snapshot with the given events, stamped now.
// Persistence failures are swallowed; the cache is best-effort.
func (c *EventCache) Save(events []models.UsageEvent) {
	snapshot := models.CachedEventSnapshot{
		Timestamp: c.now().UnixMilli(),
		Events:    events,
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		logger.Warn("failed to serialize event snapshot", "error", err)
		return
	}

	if err := c.store.Set(c.key, raw); err != nil {
		logger.Warn("failed to persist event snapshot", "error", err)
	}
}

// Invalidate removes the snapshot so the next Load misses.
func (c *EventCache) Invalidate() {
	if err := c.store.Delete(c.key); err != nil {
		logger.Warn("failed to invalidate event snapshot", "error", err)
	}
}
