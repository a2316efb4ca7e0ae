package transform

import (
	"time"

	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
)

// Last7Days produces the two trailing-week series: agent messages and
// accepted lines, one point per calendar day for today and the six days
// before it. Days without a metric are present with value 0, so both
// series always have exactly seven points.
func Last7Days(data *models.AnalyticsData, n *daykey.Normalizer, now time.Time) models.Last7DaysSeries {
	byDay := make(map[string]*models.DailyMetric)
	if data != nil {
		for i := range data.DailyMetrics {
			m := &data.DailyMetrics[i]
			day, ok := n.Day(m.Date)
			if !ok {
				continue
			}
			byDay[day] = m
		}
	}

	series := models.Last7DaysSeries{
		Messages:      make([]models.SeriesPoint, 0, 7),
		AcceptedLines: make([]models.SeriesPoint, 0, 7),
	}

	now = now.In(n.Location())
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		name := daykey.WeekdayShort(daykey.ISOWeekdayOf(date))

		var messages, accepted int
		if m := byDay[n.DayOf(date)]; m != nil {
			messages = m.AgentRequests
			accepted = m.AcceptedLinesAdded
		}

		series.Messages = append(series.Messages, models.SeriesPoint{X: name, Y: messages})
		series.AcceptedLines = append(series.AcceptedLines, models.SeriesPoint{X: name, Y: accepted})
	}

	return series
}
