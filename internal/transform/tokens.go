package transform

import (
	"sort"
	"time"

	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
)

// EventsSince returns the events whose timestamp falls on or after the
// cutoff. Events with malformed timestamps are dropped.
func EventsSince(events []models.UsageEvent, n *daykey.Normalizer, cutoff time.Time) []models.UsageEvent {
	var filtered []models.UsageEvent
	for i := range events {
		t, ok := n.Time(events[i].Timestamp)
		if !ok {
			continue
		}
		if !t.Before(cutoff) {
			filtered = append(filtered, events[i])
		}
	}
	return filtered
}

// WindowStart returns the start of the day windowDays calendar days
// before now, in the normalizer's location.
func WindowStart(n *daykey.Normalizer, now time.Time, windowDays int) time.Time {
	d := now.In(n.Location()).AddDate(0, 0, -windowDays)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, n.Location())
}

// TokensByDay partitions events into per-day subscription/usage token
// totals. The token total of one event is the sum of its input, output,
// cache-read and cache-write counts; events without token detail
// contribute zero, and kinds outside the two billing classes contribute
// to neither bucket.
func TokensByDay(events []models.UsageEvent, n *daykey.Normalizer) []models.BarChartRow {
	return bucketByDay(events, n, func(e *models.UsageEvent) (int, bool) {
		return e.TokenUsage.TotalTokens(), true
	})
}

// CostByDay partitions events into per-day subscription/usage cost
// totals in cents. Events without a reported cost are excluded from the
// cost series entirely.
func CostByDay(events []models.UsageEvent, n *daykey.Normalizer) []models.BarChartRow {
	return bucketByDay(events, n, func(e *models.UsageEvent) (int, bool) {
		if e.TokenUsage == nil || e.TokenUsage.TotalCents == 0 {
			return 0, false
		}
		return e.TokenUsage.TotalCents, true
	})
}

type dayBuckets struct {
	subscription int
	usage        int
}

func bucketByDay(events []models.UsageEvent, n *daykey.Normalizer, value func(*models.UsageEvent) (int, bool)) []models.BarChartRow {
	days := make(map[string]*dayBuckets)

	for i := range events {
		e := &events[i]
		day, ok := n.Day(e.Timestamp)
		if !ok {
			continue
		}

		b := days[day]
		if b == nil {
			b = &dayBuckets{}
			days[day] = b
		}

		v, ok := value(e)
		if !ok {
			continue
		}

		switch {
		case e.IsSubscription():
			b.subscription += v
		case e.IsUsageBased():
			b.usage += v
		}
	}

	rows := make([]models.BarChartRow, 0, len(days))
	for day, b := range days {
		rows = append(rows, models.BarChartRow{
			Day:          day,
			Subscription: b.subscription,
			Usage:        b.usage,
		})
	}

	// Lexicographic order is chronological for zero-padded day keys.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Day < rows[j].Day
	})

	return rows
}
