package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const loadingText = "Loading data..."

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorDanger  = lipgloss.Color("#FF6B6B")
	colorSuccess = lipgloss.Color("#6BCF7F")
	colorMuted   = lipgloss.Color("#6C757D")
	colorBorder  = lipgloss.Color("#4A90E2")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	alertStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			MarginTop(1)

	normalStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// IsAlert reports whether the alert text should be shown as an alert rather
// than as normal conditions.
func IsAlert(text string) bool {
	return strings.Contains(text, "Alert")
}

// Render draws the feed card. A nil payload renders the loading state.
func Render(p *Payload) string {
	header := headerStyle.Render("Coastal Threat Monitoring System")
	if p == nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, mutedStyle.Render(loadingText))
	}

	rows := []string{
		labelStyle.Render("Location:") + " " + p.Data.Location,
		labelStyle.Render("Wind Speed:") + " " + strconv.FormatFloat(p.Data.WindSpeed, 'f', -1, 64) + " km/h",
		labelStyle.Render("Tide Level:") + " " + fmt.Sprintf("%.2f m", p.Data.TideLevel),
	}

	status := normalStyle
	if IsAlert(p.Alert) {
		status = alertStyle
	}
	rows = append(rows, status.Render(p.Alert))

	return lipgloss.JoinVertical(lipgloss.Left, header, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
