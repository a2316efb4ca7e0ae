package models

// CalendarDay is one day cell for a calendar heatmap: a YYYY-MM-DD day
// key and the metric value for that day.
type CalendarDay struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

// WeekdayStat is one bucket of the weekday distribution. Day is the
// short weekday name, FullName the human-readable one.
type WeekdayStat struct {
	Day      string `json:"day"`
	FullName string `json:"fullName"`
	Value    int    `json:"value"`
}

// SeriesPoint is one point of a named series keyed by weekday.
type SeriesPoint struct {
	X string `json:"x"`
	Y int    `json:"y"`
}

// Last7DaysSeries carries the two parallel trailing-week series:
// message counts and accepted-lines counts, one point per day.
type Last7DaysSeries struct {
	Messages      []SeriesPoint `json:"messages"`
	AcceptedLines []SeriesPoint `json:"acceptedLines"`
}

// BarChartRow is one per-day row of a split bar series, with the value
// partitioned into subscription-included and usage-based buckets. The
// same shape serves both the token chart and the cost chart.
type BarChartRow struct {
	Day          string `json:"day"`
	Subscription int    `json:"subscription"`
	Usage        int    `json:"usage"`
}
