package usage

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/averyn/cursorboard/internal/app"
	"github.com/averyn/cursorboard/internal/dashboard"
	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
)

func newTestState() *app.State {
	return app.NewState(daykey.New(time.UTC), 14)
}

func testEvents(now time.Time) []models.UsageEvent {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	return []models.UsageEvent{
		{
			Timestamp: ts,
			Kind:      models.KindIncludedInPro,
			TokenUsage: &models.TokenUsage{
				InputTokens:  1000,
				OutputTokens: 500,
			},
		},
		{
			Timestamp: ts,
			Kind:      models.KindUsageBased,
			TokenUsage: &models.TokenUsage{
				InputTokens: 2000,
				TotalCents:  150,
			},
		},
	}
}

func TestNew(t *testing.T) {
	m := New(newTestState())
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_ViewEmpty(t *testing.T) {
	m := New(newTestState())
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "No usage events in the window") {
		t.Error("empty view should show the no-data message")
	}
}

func TestModel_ViewWithEvents(t *testing.T) {
	state := newTestState()
	state.SetEvents(testEvents(time.Now()), false)

	m := New(state)
	m.SetSize(100, 40)

	view := m.View()
	for _, want := range []string{"Tokens by Day", "Cost by Day", "2 events"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
	if strings.Contains(view, "(cached)") {
		t.Error("network-loaded events should not be marked cached")
	}
}

func TestModel_ViewCachedNote(t *testing.T) {
	state := newTestState()
	state.SetEvents(testEvents(time.Now()), true)

	m := New(state)
	m.SetSize(100, 40)

	if !strings.Contains(m.View(), "(cached)") {
		t.Error("cache-loaded events should be marked cached")
	}
}

func TestModel_ViewSweepProgress(t *testing.T) {
	state := newTestState()
	state.BeginGeneration(1)
	state.SetEventsProgress(testEvents(time.Now()), dashboard.Progress{Fetched: 50, Total: 200})

	m := New(state)
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "50/200") {
		t.Error("View should show sweep progress while loading")
	}
}

func TestModel_ViewWithError(t *testing.T) {
	state := newTestState()
	state.SetEventsError(errors.New("page 3 failed"))

	m := New(state)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "Usage events unavailable") {
		t.Error("View should surface the sweep error")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(newTestState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
}
