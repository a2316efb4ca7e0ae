package transform

import (
	"testing"
	"time"

	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
)

func utcNormalizer() *daykey.Normalizer {
	return daykey.New(time.UTC)
}

func TestAgentRequestsCalendar(t *testing.T) {
	data := &models.AnalyticsData{
		DailyMetrics: []models.DailyMetric{
			{Date: "1704067200000", AgentRequests: 4, AcceptedLinesAdded: 0}, // 2024-01-01
			{Date: "1704153600000", AgentRequests: 7},                        // 2024-01-02
		},
	}

	days := AgentRequestsCalendar(data, utcNormalizer())
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Day != "2024-01-01" || days[0].Value != 4 {
		t.Errorf("expected {2024-01-01 4}, got %+v", days[0])
	}
	if days[1].Day != "2024-01-02" || days[1].Value != 7 {
		t.Errorf("expected {2024-01-02 7}, got %+v", days[1])
	}
}

func TestAcceptedLinesCalendarDropsZeroDays(t *testing.T) {
	// A day whose metric value is zero must not produce a cell.
	data := &models.AnalyticsData{
		DailyMetrics: []models.DailyMetric{
			{Date: "1704067200000", AgentRequests: 4, AcceptedLinesAdded: 0},
		},
	}

	days := AcceptedLinesCalendar(data, utcNormalizer())
	if len(days) != 0 {
		t.Errorf("expected empty list, got %+v", days)
	}
}

func TestCalendarCollapsesDuplicateDays(t *testing.T) {
	// Two metrics on the same calendar day sum into one cell.
	morning := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC).UnixMilli()
	evening := time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC).UnixMilli()

	data := &models.AnalyticsData{
		DailyMetrics: []models.DailyMetric{
			{Date: epochString(morning), AgentRequests: 3},
			{Date: epochString(evening), AgentRequests: 2},
		},
	}

	days := AgentRequestsCalendar(data, utcNormalizer())
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if days[0].Day != "2024-05-10" || days[0].Value != 5 {
		t.Errorf("expected {2024-05-10 5}, got %+v", days[0])
	}
}

func TestCalendarDropsMalformedDates(t *testing.T) {
	data := &models.AnalyticsData{
		DailyMetrics: []models.DailyMetric{
			{Date: "garbage", AgentRequests: 99},
			{Date: "1704067200000", AgentRequests: 1},
		},
	}

	days := AgentRequestsCalendar(data, utcNormalizer())
	if len(days) != 1 {
		t.Fatalf("expected malformed record dropped, got %+v", days)
	}
	if days[0].Day != "2024-01-01" {
		t.Errorf("expected 2024-01-01, got %s", days[0].Day)
	}
}

func TestCalendarNilData(t *testing.T) {
	if days := AgentRequestsCalendar(nil, utcNormalizer()); len(days) != 0 {
		t.Errorf("expected empty list for nil data, got %+v", days)
	}
}
