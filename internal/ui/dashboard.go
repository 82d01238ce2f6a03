package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// sparkLevels are the block glyphs for the elevation sparkline.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// renderDashboard draws the full dashboard.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("solargeo"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(m.snapshot.Site.String()))
	b.WriteString("\n\n")

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if m.snapshot.ComputedAt.IsZero() {
		b.WriteString(labelStyle.Render("Computing..."))
		return b.String()
	}

	left := panelStyle.Render(m.renderPosition())
	right := panelStyle.Render(m.renderDaylight())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	b.WriteString(panelStyle.Render(m.renderSparkline()))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("a: toggle averaged/live  q: quit"))
	return b.String()
}

// renderPosition draws the current solar position panel.
func (m Model) renderPosition() string {
	pos := m.snapshot.Position

	status := downStyle.Render("below horizon")
	if pos.Elevation > 0 {
		status = upStyle.Render("above horizon")
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Sun position  ") + status + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Elevation"),
		valueStyle.Render(fmt.Sprintf("%7.2f°", pos.Elevation))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Azimuth  "),
		valueStyle.Render(fmt.Sprintf("%7.2f°", pos.Azimuth))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Distance "),
		valueStyle.Render(fmt.Sprintf("%7.5f AU", pos.Distance))))
	b.WriteString(labelStyle.Render("as of ") +
		m.snapshot.ComputedAt.UTC().Format("15:04:05") + labelStyle.Render(" UTC"))
	return b.String()
}

// renderDaylight draws the sunrise/sunset panel.
func (m Model) renderDaylight() string {
	tr := m.snapshot.Trace

	var b strings.Builder
	b.WriteString(labelStyle.Render("Daylight") + "\n")

	if tr == nil {
		b.WriteString(labelStyle.Render("no trace yet"))
		return b.String()
	}
	if !tr.HasDaylight {
		b.WriteString(downStyle.Render("sun does not cross the horizon today") + "\n")
		b.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("Peak elevation"),
			valueStyle.Render(fmt.Sprintf("%.2f°", tr.MaxElevation))))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Sunrise "),
		valueStyle.Render(tr.Sunrise.Format("15:04")+" UTC")))
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Sunset  "),
		valueStyle.Render(tr.Sunset.Format("15:04")+" UTC")))
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Length  "),
		valueStyle.Render(formatDayLength(tr.DayLength()))))
	b.WriteString(fmt.Sprintf("%s %s",
		labelStyle.Render("Peak el "),
		valueStyle.Render(fmt.Sprintf("%.2f°", tr.MaxElevation))))
	return b.String()
}

// renderSparkline draws either the averaged day profile or the live
// elevation history as a block-glyph sparkline.
func (m Model) renderSparkline() string {
	var (
		label  string
		values []float64
	)

	if m.showAveraged && m.snapshot.Trace != nil {
		label = "Averaged elevation, today by bin"
		for _, s := range m.snapshot.Trace.Averaged {
			values = append(values, s.Elevation)
		}
	} else {
		label = "Live elevation history"
		for _, h := range m.snapshot.History {
			values = append(values, h.Elevation)
		}
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(label) + "\n")
	if len(values) == 0 {
		b.WriteString(labelStyle.Render("no samples yet"))
		return b.String()
	}
	b.WriteString(upStyle.Render(Sparkline(values, 90)))
	return b.String()
}

// Sparkline renders values as block glyphs, scaled against ceil. Values at
// or below zero map to the lowest block.
func Sparkline(values []float64, ceil float64) string {
	if ceil <= 0 {
		ceil = 1
	}

	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		idx := int(v / ceil * float64(len(sparkLevels)))
		if idx >= len(sparkLevels) {
			idx = len(sparkLevels) - 1
		}
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}

func formatDayLength(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", d/time.Hour, (d%time.Hour)/time.Minute)
}
