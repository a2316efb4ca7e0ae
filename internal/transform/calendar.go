// Package transform contains the pure functions that turn analytics data
// and usage events into the chart-ready view records. Every transform
// regroups its input from scratch by day key, so input order and
// within-day duplication never matter.
package transform

import (
	"sort"

	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
)

// AgentRequestsCalendar maps each daily metric to a calendar cell valued
// by its agent-request count. Zero-valued days are dropped so that "no
// activity" does not render as a colored cell.
func AgentRequestsCalendar(data *models.AnalyticsData, n *daykey.Normalizer) []models.CalendarDay {
	return metricCalendar(data, n, func(m *models.DailyMetric) int {
		return m.AgentRequests
	})
}

// AcceptedLinesCalendar maps each daily metric to a calendar cell valued
// by its accepted-lines-added count.
func AcceptedLinesCalendar(data *models.AnalyticsData, n *daykey.Normalizer) []models.CalendarDay {
	return metricCalendar(data, n, func(m *models.DailyMetric) int {
		return m.AcceptedLinesAdded
	})
}

func metricCalendar(data *models.AnalyticsData, n *daykey.Normalizer, value func(*models.DailyMetric) int) []models.CalendarDay {
	if data == nil {
		return nil
	}

	totals := make(map[string]int)
	for i := range data.DailyMetrics {
		m := &data.DailyMetrics[i]
		day, ok := n.Day(m.Date)
		if !ok {
			// Malformed date, drop the record.
			continue
		}
		totals[day] += value(m)
	}

	days := make([]models.CalendarDay, 0, len(totals))
	for day, v := range totals {
		if v == 0 {
			continue
		}
		days = append(days, models.CalendarDay{Day: day, Value: v})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})

	return days
}
