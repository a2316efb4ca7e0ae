package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/averyn/cursorboard/internal/models"
)

type fakeFetcher struct {
	data *models.AnalyticsData
	err  error
}

func (f *fakeFetcher) FetchAnalytics(_ context.Context, _, _ string) (*models.AnalyticsData, error) {
	return f.data, f.err
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestFetchSuccess(t *testing.T) {
	data := &models.AnalyticsData{
		DailyMetrics: []models.DailyMetric{{Date: "1704067200000", AgentRequests: 3}},
	}
	s := New(&fakeFetcher{data: data})

	go s.Fetch(context.Background(), 4, "0", "1")

	e := waitEvent(t, s.Events())
	if e.Type != EventLoaded || e.Gen != 4 {
		t.Errorf("unexpected event: %+v", e)
	}
	if len(e.Data.DailyMetrics) != 1 || e.Data.DailyMetrics[0].AgentRequests != 3 {
		t.Errorf("payload not carried through: %+v", e.Data)
	}
}

func TestFetchFailure(t *testing.T) {
	s := New(&fakeFetcher{err: errors.New("status 401")})

	go s.Fetch(context.Background(), 9, "0", "1")

	e := waitEvent(t, s.Events())
	if e.Type != EventError || e.Gen != 9 || e.Error == nil {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Data != nil {
		t.Error("error event must not carry data")
	}
}
