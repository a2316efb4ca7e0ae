package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/averyn/cursorboard/internal/models"
	"github.com/averyn/cursorboard/internal/ui/styles"
)

// ValueFormatter turns a raw chart value into its display form, e.g.
// "1.2M tok" or "$3.40".
type ValueFormatter func(v int) string

// FormatCount renders token-style counts with k/M suffixes.
func FormatCount(v int) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// FormatCents renders a cent amount as dollars.
func FormatCents(v int) string {
	return fmt.Sprintf("$%.2f", float64(v)/100)
}

// RenderSplitBarChart draws one horizontal bar per day, split into a
// subscription segment and a usage-based segment, all scaled against
// the largest day total. Day labels show month-day only.
func RenderSplitBarChart(rows []models.BarChartRow, width int, format ValueFormatter) string {
	if len(rows) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	maxTotal := 0
	for _, r := range rows {
		if t := r.Subscription + r.Usage; t > maxTotal {
			maxTotal = t
		}
	}
	if maxTotal == 0 {
		maxTotal = 1
	}

	const labelWidth = 5 // "MM-DD"
	barWidth := width - labelWidth - 14
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for _, r := range rows {
		label := r.Day
		if len(label) == len("2006-01-02") {
			label = label[5:]
		}

		total := r.Subscription + r.Usage
		subLen := int(float64(r.Subscription) / float64(maxTotal) * float64(barWidth))
		usageLen := int(float64(r.Usage) / float64(maxTotal) * float64(barWidth))
		if total > 0 && subLen+usageLen == 0 {
			// Keep non-empty days visible.
			if r.Subscription >= r.Usage {
				subLen = 1
			} else {
				usageLen = 1
			}
		}

		bar := styles.SubscriptionStyle.Render(strings.Repeat("█", subLen)) +
			styles.UsageBasedStyle.Render(strings.Repeat("█", usageLen))

		line := fmt.Sprintf("%*s │%s %s", labelWidth, label, bar,
			styles.HelpStyle.Render(format(total)))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// RenderLabeledBarChart draws one horizontal bar per labeled value,
// scaled against the largest value.
func RenderLabeledBarChart(labels []string, values []int, width int) string {
	if len(values) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	maxVal := 0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		if len(l) > maxLabelLen {
			maxLabelLen = len(l)
		}
	}

	barWidth := width - maxLabelLen - 12
	if barWidth < 10 {
		barWidth = 10
	}

	barStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := int(float64(v) / float64(maxVal) * float64(barWidth))
		if v > 0 && barLen == 0 {
			barLen = 1
		}

		line := fmt.Sprintf("%*s │%s %s", maxLabelLen, label,
			barStyle.Render(strings.Repeat("█", barLen)),
			styles.HelpStyle.Render(FormatCount(v)))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
