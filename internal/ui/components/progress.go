package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/averyn/cursorboard/internal/logger"
	"github.com/averyn/cursorboard/internal/ui/styles"
)

// RenderGradientBar renders a percent-filled bar with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	filled = min(max(filled, 0), width)

	var barChars []string
	for i := range width {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#ffd93d", "#51cf66", t)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			barChars = append(barChars, style.Render("█"))
		} else {
			style := lipgloss.NewStyle().Foreground(styles.Subtle)
			barChars = append(barChars, style.Render("░"))
		}
	}

	return strings.Join(barChars, "")
}

// SweepProgressBar renders the usage-event sweep progress as a bar with
// a fetched/total count. An unknown total (first page still in flight)
// renders as an empty bar.
func SweepProgressBar(fetched, total, width int) string {
	percent := 0.0
	if total > 0 {
		percent = float64(fetched) / float64(total) * 100
		if percent > 100 {
			percent = 100
		}
	}

	countStr := fmt.Sprintf("%d/%d", fetched, total)
	barWidth := width - len(countStr) - 10
	if barWidth < 10 {
		barWidth = 10
	}

	bar := RenderGradientBar(percent, barWidth)
	label := styles.HelpStyle.Render(fmt.Sprintf("%s (%.0f%%)", countStr, percent))

	return fmt.Sprintf("[%s] %s", bar, label)
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
