package info

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/averyn/cursorboard/internal/ui/components"
	"github.com/averyn/cursorboard/internal/ui/styles"
	"github.com/averyn/cursorboard/internal/version"
)

// topModels caps the model-usage breakdown to the busiest entries.
const topModels = 8

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderModelsCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, model usage and build details")

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

var infoLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Secondary)

func infoRow(label, value string) string {
	return fmt.Sprintf("%s %s",
		infoLabelStyle.Render(fmt.Sprintf("%-16s", label)),
		styles.TableCellStyle.Render(value))
}

// renderConfigCard shows the active configuration and session status.
func (m *Model) renderConfigCard() string {
	cfg := m.services.Config()

	token := styles.ErrorTextStyle.Render("missing")
	if m.services.HasSessionToken() {
		token = styles.SuccessTextStyle.Render("present")
	}

	rows := []string{
		styles.CardTitleStyle.Render("Configuration"),
		"",
		infoRow("API base URL", cfg.APIBaseURL),
		infoRow("Session token", token),
		infoRow("Event cache", m.services.CacheBackend()),
		infoRow("Cache TTL", cfg.EventsCacheTTL.String()),
		infoRow("Page size", fmt.Sprintf("%d", cfg.EventsPageSize)),
		infoRow("Usage window", fmt.Sprintf("%d days", cfg.UsageWindowDays)),
	}
	if cfg.CostAlertCents > 0 {
		rows = append(rows, infoRow("Cost alert", fmt.Sprintf("$%.2f/day", float64(cfg.CostAlertCents)/100)))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderModelsCard shows total requests per model across the whole
// analytics period.
func (m *Model) renderModelsCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Model Usage"))
	rows = append(rows, "")

	labels, values := m.aggregateModelUsage()
	if len(labels) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No model usage data yet"))
	} else {
		rows = append(rows, components.RenderLabeledBarChart(labels, values, m.cardWidth()-6))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// aggregateModelUsage sums the per-day model counters over the full
// analytics period and returns the busiest models, highest first.
func (m *Model) aggregateModelUsage() ([]string, []int) {
	data := m.state.GetAnalytics()
	if data == nil {
		return nil, nil
	}

	totals := make(map[string]int)
	for _, day := range data.DailyMetrics {
		for _, usage := range day.ModelUsage {
			totals[usage.Name] += usage.Count
		}
	}
	if len(totals) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > topModels {
		names = names[:topModels]
	}

	values := make([]int, len(names))
	for i, name := range names {
		values[i] = totals[name]
	}
	return names, values
}

// renderAboutCard shows build and team information.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About"),
		"",
		infoRow("Build", version.Info()),
	}

	if data := m.state.GetAnalytics(); data != nil && data.TotalMembersInTeam > 0 {
		rows = append(rows, infoRow("Team members", fmt.Sprintf("%d", data.TotalMembersInTeam)))
	}
	if !m.state.GetLastUpdated().IsZero() {
		rows = append(rows, infoRow("Last updated", m.state.GetLastUpdated().Format("15:04:05")))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
