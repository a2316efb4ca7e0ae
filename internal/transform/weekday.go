package transform

import (
	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
)

// WeekdayDistribution sums agent requests into seven weekday buckets,
// Monday first. All seven buckets are present in the output even when
// the input is empty.
func WeekdayDistribution(data *models.AnalyticsData, n *daykey.Normalizer) []models.WeekdayStat {
	stats := make([]models.WeekdayStat, 7)
	for i := range stats {
		stats[i] = models.WeekdayStat{
			Day:      daykey.WeekdayShort(i),
			FullName: daykey.WeekdayFull(i),
		}
	}

	if data == nil {
		return stats
	}

	for i := range data.DailyMetrics {
		m := &data.DailyMetrics[i]
		wd, ok := n.ISOWeekday(m.Date)
		if !ok {
			continue
		}
		stats[wd].Value += m.AgentRequests
	}

	return stats
}
