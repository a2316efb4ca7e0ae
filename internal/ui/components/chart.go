// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/averyn/cursorboard/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderDualLineChart plots two series on one chart, first series red,
// second blue. Shorter series are zero-padded to the longer one.
func RenderDualLineChart(first, second []float64, width, height int, caption string) string {
	if len(first) == 0 && len(second) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	maxLen := max(len(first), len(second))
	a := make([]float64, maxLen)
	b := make([]float64, maxLen)
	copy(a, first)
	copy(b, second)

	return asciigraph.PlotMany([][]float64{a, b},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Red,
			asciigraph.Blue,
		),
	)
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		idx := int(float64(i) * step)
		normalized := int((values[idx] / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// BillingLegend is the legend shared by every split bar chart.
func BillingLegend() string {
	return RenderLegend([]LegendItem{
		{Label: "Subscription", Color: styles.Subscription},
		{Label: "Usage-based", Color: styles.UsageBased},
	})
}
