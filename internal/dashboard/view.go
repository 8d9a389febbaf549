package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Fallback dimensions before the first WindowSizeMsg.
const (
	defaultWidth = 80
	minPlotRows  = 3
	maxPlotRows  = 12
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.lastErr != "" {
		b.WriteString(ErrorTextStyle.Render("  " + m.lastErr))
		b.WriteString("\n")
	}

	if banner := m.renderAlertBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPanels())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title, endpoint and freshness.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("sensordash")

	var updateText string
	switch {
	case m.ctrl.LastUpdate().IsZero():
		updateText = "waiting for data"
	case m.SecondsSinceUpdate() == 0:
		updateText = "updated just now"
	default:
		updateText = fmt.Sprintf("updated %ds ago", m.SecondsSinceUpdate())
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %s | %s", m.endpoint, updateText))

	status := ""
	if m.inFlight {
		status = " " + m.spinner.View()
	}

	return HeaderStyle.Render(title + stats + status)
}

// renderAlertBanner returns the fire alert block, or "" while hidden.
func (m Model) renderAlertBanner() string {
	if m.ctrl.Alert() != AlertShown {
		return ""
	}
	text := fmt.Sprintf("FIRE ALERT  temperature %s is above %s°C",
		m.ctrl.Readouts().Temperature, FormatReading(Threshold))
	return AlertBannerStyle.Width(m.contentWidth()).Render(text)
}

// renderPanels lays out the two chart panels side by side on wide terminals
// and stacked otherwise.
func (m Model) renderPanels() string {
	width := m.contentWidth()
	sideBySide := width >= BreakpointSideBySide

	panelWidth := width
	if sideBySide {
		panelWidth = width/2 - 1
	}

	readouts := m.ctrl.Readouts()
	temp := m.renderPanel(m.ctrl.Temperature(), readouts.Temperature, panelWidth)
	hum := m.renderPanel(m.ctrl.Humidity(), readouts.Humidity, panelWidth)

	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, temp, " ", hum)
	}
	return lipgloss.JoinVertical(lipgloss.Left, temp, hum)
}

// renderPanel renders one bordered chart with its readout in the title row.
func (m Model) renderPanel(c *Chart, readout string, width int) string {
	// Border (2) and padding (2) sit outside the inner width.
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	if readout == "" {
		readout = "--"
	}
	title := PanelTitleStyle.Render(c.Title)
	value := ReadoutStyle.Foreground(c.Color).Render(readout)
	gap := inner - lipgloss.Width(title) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + value

	body := RenderChartPanel(c, inner, plotRows(inner))

	return PanelStyle.Width(inner + 2).Render(header + "\n" + body)
}

// plotRows keeps the chart at a fixed aspect ratio. A terminal cell is about
// twice as tall as it is wide, so width/4 rows gives a 2:1 plot.
func plotRows(width int) int {
	rows := width / 4
	if rows < minPlotRows {
		return minPlotRows
	}
	if rows > maxPlotRows {
		return maxPlotRows
	}
	return rows
}

// renderFooter renders the key help line.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.View(keys))
}

// contentWidth is the usable terminal width.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}
