package services

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/averyn/cursorboard/internal/config"
	"github.com/averyn/cursorboard/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:     "http://127.0.0.1:0/api/dashboard",
		SessionToken:   "tok",
		EventsCacheTTL: time.Hour,
		EventsPageSize: 10,
	}
}

func TestNewManager(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if mgr.Normalizer() == nil {
		t.Error("normalizer should be initialized")
	}
	if !mgr.HasSessionToken() {
		t.Error("session token should be set")
	}
	if mgr.CacheBackend() != "in-memory" {
		t.Errorf("expected in-memory cache backend, got %s", mgr.CacheBackend())
	}
}

func TestManagerSQLiteBackend(t *testing.T) {
	cfg := testConfig()
	cfg.CacheDBPath = t.TempDir() + "/cache.db"

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if mgr.CacheBackend() != cfg.CacheDBPath {
		t.Errorf("expected sqlite backend path, got %s", mgr.CacheBackend())
	}
}

func TestManagerSubscription(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("channel should be closed after Unsubscribe")
		}
	default:
	}
}

func TestManagerBroadcast(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := EventsLoadedEvent{Gen: 3, FromCache: true}
	mgr.broadcast(event)

	select {
	case e := <-ch:
		loaded, ok := e.(EventsLoadedEvent)
		if !ok {
			t.Fatalf("got event %T, want EventsLoadedEvent", e)
		}
		if loaded.Gen != 3 || !loaded.FromCache {
			t.Errorf("got event %+v", loaded)
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for broadcast")
	}
}

func TestManagerRefreshIncrementsGeneration(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if gen := mgr.Refresh(); gen != 1 {
		t.Errorf("first refresh: expected gen 1, got %d", gen)
	}
	if gen := mgr.Refresh(); gen != 2 {
		t.Errorf("second refresh: expected gen 2, got %d", gen)
	}
	if mgr.Gen() != 2 {
		t.Errorf("expected current gen 2, got %d", mgr.Gen())
	}
}

func TestManagerRefreshEmitsErrorsOnUnreachableAPI(t *testing.T) {
	// The test base URL points nowhere, so both fetch paths fail and
	// each reports on its own error path.
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	gen := mgr.Refresh()

	sources := make(map[string]bool)
	deadline := time.After(5 * time.Second)
	for len(sources) < 2 {
		select {
		case e := <-ch:
			if errEvent, ok := e.(ErrorEvent); ok {
				if errEvent.Gen != gen {
					t.Errorf("error event gen %d, want %d", errEvent.Gen, gen)
				}
				sources[errEvent.Source] = true
			}
		case <-deadline:
			t.Fatalf("timed out; saw error sources %v", sources)
		}
	}

	if !sources["analytics"] || !sources["usage-events"] {
		t.Errorf("expected errors from both paths, got %v", sources)
	}
}

func TestQueryRange(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.Local)
	start, end := mgr.queryRange(now)

	if start != "1704067200000" {
		t.Errorf("expected fixed start 2024-01-01 UTC, got %s", start)
	}

	endMs, err := strconv.ParseInt(end, 10, 64)
	if err != nil {
		t.Fatalf("end is not epoch millis: %s", end)
	}
	endTime := time.UnixMilli(endMs).In(time.Local)
	if endTime.Day() != 11 || endTime.Hour() != 23 || endTime.Minute() != 59 {
		t.Errorf("expected end of tomorrow, got %s", endTime)
	}
}

func TestCheckCostAlertDisabledByDefault(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	// Threshold zero: never alerts, never records a day.
	mgr.checkCostAlert(costEvents(t, time.Now(), 10_00))
	if mgr.lastAlertDay != "" {
		t.Errorf("alert fired with threshold disabled: %s", mgr.lastAlertDay)
	}
}

func TestCheckCostAlertBelowThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.CostAlertCents = 50_00
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	mgr.checkCostAlert(costEvents(t, time.Now(), 10_00))
	if mgr.lastAlertDay != "" {
		t.Errorf("alert fired below threshold: %s", mgr.lastAlertDay)
	}
}

func TestCheckCostAlertOncePerDay(t *testing.T) {
	cfg := testConfig()
	cfg.CostAlertCents = 5_00
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	now := time.Now()
	mgr.checkCostAlert(costEvents(t, now, 10_00))

	today := mgr.normalizer.DayOf(now)
	if mgr.lastAlertDay != today {
		t.Errorf("expected alert day %s, got %q", today, mgr.lastAlertDay)
	}

	// A second sweep on the same day must not alert again; the guard
	// day stays put either way, so this just must not panic or reset it.
	mgr.checkCostAlert(costEvents(t, now, 20_00))
	if mgr.lastAlertDay != today {
		t.Errorf("alert day changed on repeat: %q", mgr.lastAlertDay)
	}
}

// costEvents builds one usage-based event today worth the given cents.
func costEvents(t *testing.T, now time.Time, cents int) []models.UsageEvent {
	t.Helper()
	return []models.UsageEvent{{
		Timestamp: fmt.Sprintf("%d", now.UnixMilli()),
		Kind:      models.KindUsageBased,
		TokenUsage: &models.TokenUsage{
			TotalCents: cents,
		},
	}}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- TokenChangedEvent{}

	cmd := WaitForEvent(ch)
	msg := cmd()
	if msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}
}

func TestServiceEventInterface(t *testing.T) {
	var _ ServiceEvent = AnalyticsLoadedEvent{}
	var _ ServiceEvent = SweepStartedEvent{}
	var _ ServiceEvent = EventsProgressEvent{}
	var _ ServiceEvent = EventsLoadedEvent{}
	var _ ServiceEvent = TokenChangedEvent{}
	var _ ServiceEvent = ErrorEvent{}
}
