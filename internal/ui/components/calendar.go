package components

import (
	"strings"
	"time"

	"github.com/averyn/cursorboard/internal/daykey"
	"github.com/averyn/cursorboard/internal/models"
	"github.com/averyn/cursorboard/internal/ui/styles"
)

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'·', '░', '▒', '▓', '█'}

// RenderCalendarHeatmap draws a week-per-column activity grid covering
// the given number of weeks back from today, Monday on the top row.
// Days without data render as the coldest cell.
func RenderCalendarHeatmap(days []models.CalendarDay, weeks int, now time.Time) string {
	if weeks < 1 {
		weeks = 1
	}

	byDay := make(map[string]int, len(days))
	maxVal := 0
	for _, d := range days {
		byDay[d.Day] = d.Value
		if d.Value > maxVal {
			maxVal = d.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Last column is the week containing today; walk back to its Monday.
	monday := now.AddDate(0, 0, -daykey.ISOWeekdayOf(now))
	firstMonday := monday.AddDate(0, 0, -7*(weeks-1))

	var rows []string
	for wd := range 7 {
		var b strings.Builder
		b.WriteString(styles.HelpStyle.Render(daykey.WeekdayShort(wd)))
		b.WriteString(" ")

		for week := range weeks {
			day := firstMonday.AddDate(0, 0, week*7+wd)
			if day.After(now) {
				b.WriteString(" ")
				continue
			}

			key := day.Format("2006-01-02")
			v := byDay[key]

			level := 0
			if v > 0 {
				level = 1 + int(float64(v)/float64(maxVal)*float64(len(HeatmapBlocks)-2))
				level = min(level, len(HeatmapBlocks)-1)
			}

			b.WriteString(styles.HeatLevelStyles[level].Render(string(HeatmapBlocks[level])))
		}

		rows = append(rows, b.String())
	}

	return strings.Join(rows, "\n")
}
