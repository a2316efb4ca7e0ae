package usage

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/averyn/cursorboard/internal/ui/components"
	"github.com/averyn/cursorboard/internal/ui/styles"
)

// View renders the usage tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderStatus())

	if err := m.state.EventsError(); err != nil {
		sections = append(sections,
			styles.ErrorTextStyle.Render(fmt.Sprintf("Usage events unavailable: %v", err)))
	}

	if len(m.state.GetEvents()) > 0 {
		sections = append(sections, m.renderTokensCard())
		sections = append(sections, m.renderCostCard())
	} else if !m.state.LoadingEvents() && m.state.EventsError() == nil {
		sections = append(sections, styles.HelpStyle.Render("No usage events in the window"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Usage")
	subtitle := styles.HelpStyle.Render("Tokens and spend per day, split by billing class")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderStatus shows sweep progress while pages are landing, and the
// data provenance once the sweep is done.
func (m *Model) renderStatus() string {
	progress, complete := m.state.GetProgress()

	if m.state.LoadingEvents() && !complete {
		bar := components.SweepProgressBar(progress.Fetched, progress.Total, m.cardWidth())
		return lipgloss.JoinVertical(lipgloss.Left, bar, "")
	}

	if complete {
		note := fmt.Sprintf("%d events", progress.Fetched)
		if m.state.FromCache() {
			note += " (cached)"
		}
		return lipgloss.JoinVertical(lipgloss.Left, styles.HelpStyle.Render(note), "")
	}

	return ""
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

// renderTokensCard renders the per-day token split bars.
func (m *Model) renderTokensCard() string {
	views := m.state.GetViews()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Tokens by Day"))
	rows = append(rows, "")
	rows = append(rows, components.RenderSplitBarChart(views.TokensByDay, m.cardWidth()-6, components.FormatCount))
	rows = append(rows, "")
	rows = append(rows, components.BillingLegend())

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderCostCard renders the per-day cost split bars.
func (m *Model) renderCostCard() string {
	views := m.state.GetViews()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Cost by Day"))
	rows = append(rows, "")
	rows = append(rows, components.RenderSplitBarChart(views.CostByDay, m.cardWidth()-6, components.FormatCents))
	rows = append(rows, "")
	rows = append(rows, components.BillingLegend())

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
