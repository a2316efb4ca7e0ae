// Package daykey converts millisecond-epoch timestamps into the calendar
// day keys that every derived view groups by. All charts must agree on
// what "the same day" means, so a single Normalizer bound to one fixed
// location is shared across the whole pipeline for the lifetime of a run.
package daykey

import (
	"strconv"
	"time"
)

// Short and full weekday names indexed by ISO weekday (Monday = 0).
var (
	shortNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	fullNames  = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

// Normalizer maps epoch timestamps to day keys in one fixed location.
type Normalizer struct {
	loc *time.Location
}

// New creates a Normalizer for the given location. A nil location means
// the system's local timezone.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Location returns the location the normalizer is bound to.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Time parses a millisecond-epoch string into a time in the normalizer's
// location. ok is false when the string is not a valid integer; callers
// drop such records rather than crash.
func (n *Normalizer) Time(epochMs string) (time.Time, bool) {
	ms, err := strconv.ParseInt(epochMs, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).In(n.loc), true
}

// Day returns the canonical YYYY-MM-DD day key for an epoch string.
func (n *Normalizer) Day(epochMs string) (string, bool) {
	t, ok := n.Time(epochMs)
	if !ok {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// DayOf returns the day key for an already-parsed time.
func (n *Normalizer) DayOf(t time.Time) string {
	return t.In(n.loc).Format("2006-01-02")
}

// MonthDay returns the MM-DD slice of the day key, used as the compact
// axis label on bar charts.
func (n *Normalizer) MonthDay(epochMs string) (string, bool) {
	t, ok := n.Time(epochMs)
	if !ok {
		return "", false
	}
	return t.Format("01-02"), true
}

// ISOWeekday returns the weekday index with Monday = 0 and Sunday = 6.
func (n *Normalizer) ISOWeekday(epochMs string) (int, bool) {
	t, ok := n.Time(epochMs)
	if !ok {
		return 0, false
	}
	return ISOWeekdayOf(t), true
}

// ISOWeekdayOf converts Go's Sunday-first weekday to Monday-first.
func ISOWeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayShort returns the short name for an ISO weekday index.
func WeekdayShort(iso int) string {
	return shortNames[iso%7]
}

// WeekdayFull returns the full name for an ISO weekday index.
func WeekdayFull(iso int) string {
	return fullNames[iso%7]
}
