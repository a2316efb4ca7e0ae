package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/averyn/cursorboard/internal/config"
	"github.com/averyn/cursorboard/internal/services"
)

func newTestManager(t *testing.T) *services.Manager {
	t.Helper()

	cfg := &config.Config{
		APIBaseURL:      "http://127.0.0.1:0/api/dashboard",
		SessionToken:    "tok",
		EventsCacheTTL:  time.Hour,
		EventsPageSize:  100,
		UsageWindowDays: 14,
	}
	mgr, err := services.NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(newTestManager(t))
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		id   TabID
		want string
	}{
		{TabActivity, "Activity"},
		{TabUsage, "Usage"},
		{TabInfo, "Info"},
		{TabID(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	if m.GetActiveTab() != TabActivity {
		t.Errorf("active tab = %v, want Activity", m.GetActiveTab())
	}
	if m.GetState() == nil {
		t.Error("state is nil")
	}
	if m.GetServices() == nil {
		t.Error("services is nil")
	}
	if m.IsReady() {
		t.Error("model should not be ready before the first WindowSizeMsg")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !m.IsReady() {
		t.Error("model should be ready after WindowSizeMsg")
	}
}

func TestModel_TabSwitching(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyRune('2'))
	if m.GetActiveTab() != TabUsage {
		t.Errorf("active tab = %v, want Usage", m.GetActiveTab())
	}

	m.Update(keyRune('3'))
	if m.GetActiveTab() != TabInfo {
		t.Errorf("active tab = %v, want Info", m.GetActiveTab())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.GetActiveTab() != TabActivity {
		t.Errorf("next tab should wrap to Activity, got %v", m.GetActiveTab())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.GetActiveTab() != TabInfo {
		t.Errorf("prev tab should wrap to Info, got %v", m.GetActiveTab())
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyRune('?'))
	if !m.showHelp {
		t.Error("help should be visible after ?")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("escape should dismiss help")
	}
}

func TestModel_RefreshStartedResetsGeneration(t *testing.T) {
	m := newTestModel(t)

	m.Update(RefreshStartedMsg{Gen: 4})
	if m.GetState().Gen() != 4 {
		t.Errorf("state gen = %d, want 4", m.GetState().Gen())
	}
	if !m.GetState().AnyLoading() {
		t.Error("both sources should be loading after a refresh starts")
	}
}

func TestModel_StaleEventsDropped(t *testing.T) {
	m := newTestModel(t)
	m.GetState().BeginGeneration(5)

	m.handleServiceEvent(services.EventsLoadedEvent{
		Gen:    3,
		Events: testEvents(time.Now()),
	})

	if len(m.GetState().GetEvents()) != 0 {
		t.Error("events from a superseded generation should be discarded")
	}
}

func TestModel_CurrentEventsApplied(t *testing.T) {
	m := newTestModel(t)
	m.GetState().BeginGeneration(2)

	cmd := m.handleServiceEvent(services.EventsLoadedEvent{
		Gen:    2,
		Events: testEvents(time.Now()),
	})

	if len(m.GetState().GetEvents()) != 2 {
		t.Error("current-generation events should be applied")
	}
	if cmd == nil {
		t.Error("loaded events should trigger a notification")
	}
}

func TestModel_AnalyticsApplied(t *testing.T) {
	m := newTestModel(t)
	m.GetState().BeginGeneration(1)

	m.handleServiceEvent(services.AnalyticsLoadedEvent{
		Gen:  1,
		Data: testAnalytics(time.Now()),
	})

	if m.GetState().GetAnalytics() == nil {
		t.Error("analytics should be applied")
	}
}

func TestModel_ErrorEventRouting(t *testing.T) {
	m := newTestModel(t)
	m.GetState().BeginGeneration(1)

	m.handleServiceEvent(services.ErrorEvent{
		Source: "analytics",
		Gen:    1,
		Error:  errors.New("analytics down"),
	})
	m.handleServiceEvent(services.ErrorEvent{
		Source: "usage-events",
		Gen:    1,
		Error:  errors.New("sweep down"),
	})

	if m.GetState().AnalyticsError() == nil {
		t.Error("analytics error should be recorded")
	}
	if m.GetState().EventsError() == nil {
		t.Error("sweep error should be recorded")
	}
}

func TestModel_StaleErrorDropped(t *testing.T) {
	m := newTestModel(t)
	m.GetState().BeginGeneration(5)

	m.handleServiceEvent(services.ErrorEvent{
		Source: "analytics",
		Gen:    2,
		Error:  errors.New("old failure"),
	})

	if m.GetState().AnalyticsError() != nil {
		t.Error("errors from a superseded generation should be discarded")
	}
}

func TestModel_TokenChangedTriggersRefresh(t *testing.T) {
	m := newTestModel(t)

	cmd := m.handleServiceEvent(services.TokenChangedEvent{})
	if cmd == nil {
		t.Error("token change should trigger a refresh command")
	}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "Loading") {
		t.Error("pre-ready view should show loading")
	}
}

func TestModel_NotificationMessages(t *testing.T) {
	m := newTestModel(t)

	m.Update(AddNotificationMsg{Type: NotificationSuccess, Message: "done", Duration: time.Minute})
	if len(m.GetState().GetNotifications()) != 1 {
		t.Fatal("notification should be added")
	}

	id := m.GetState().GetNotifications()[0].ID
	m.Update(RemoveNotificationMsg{ID: id})
	if len(m.GetState().GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}
}
