package activity

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/averyn/cursorboard/internal/models"
	"github.com/averyn/cursorboard/internal/ui/components"
	"github.com/averyn/cursorboard/internal/ui/styles"
)

const heatmapWeeks = 16

// View renders the activity tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())

	if err := m.state.AnalyticsError(); err != nil {
		sections = append(sections,
			styles.ErrorTextStyle.Render(fmt.Sprintf("Analytics unavailable: %v", err)))
	}

	if m.state.GetAnalytics() == nil {
		if m.state.LoadingAnalytics() {
			sections = append(sections, styles.HelpStyle.Render("Loading analytics..."))
		} else if m.state.AnalyticsError() == nil {
			sections = append(sections, styles.HelpStyle.Render("No analytics data yet"))
		}
	} else {
		sections = append(sections, m.renderHeatmapCard())
		sections = append(sections, m.renderWeekdayCard())
		sections = append(sections, m.renderTrendCard())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Activity")
	subtitle := styles.HelpStyle.Render("Agent requests and accepted code over time")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 50 {
		w = 50
	}
	if w > 100 {
		w = 100
	}
	return w
}

// renderHeatmapCard renders the agent-request calendar heatmap.
func (m *Model) renderHeatmapCard() string {
	views := m.state.GetViews()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Agent Requests"))
	rows = append(rows, "")

	if len(views.RequestsCalendar) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No activity recorded"))
	} else {
		rows = append(rows, components.RenderCalendarHeatmap(views.RequestsCalendar, heatmapWeeks, time.Now()))
		rows = append(rows, "")
		rows = append(rows, styles.HelpStyle.Render(
			fmt.Sprintf("%d active days in the last %d weeks", len(views.RequestsCalendar), heatmapWeeks)))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderWeekdayCard renders the per-weekday request distribution.
func (m *Model) renderWeekdayCard() string {
	views := m.state.GetViews()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Requests by Weekday"))
	rows = append(rows, "")

	labels := make([]string, len(views.WeekdayStats))
	values := make([]int, len(views.WeekdayStats))
	for i, s := range views.WeekdayStats {
		labels[i] = s.Day
		values[i] = s.Value
	}
	rows = append(rows, components.RenderLabeledBarChart(labels, values, m.cardWidth()-6))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderTrendCard renders the last-7-days dual line chart.
func (m *Model) renderTrendCard() string {
	views := m.state.GetViews()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Last 7 Days"))
	rows = append(rows, "")

	messages := seriesValues(views.Last7Days.Messages)
	accepted := seriesValues(views.Last7Days.AcceptedLines)

	chart := components.RenderDualLineChart(messages, accepted, m.cardWidth()-10, 8, "")
	rows = append(rows, chart)
	rows = append(rows, "")
	rows = append(rows, components.RenderLegend([]components.LegendItem{
		{Label: "Messages", Color: lipgloss.Color("196")},
		{Label: "Accepted lines", Color: lipgloss.Color("39")},
	}))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func seriesValues(points []models.SeriesPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Y)
	}
	return values
}
