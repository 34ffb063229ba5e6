package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#F59E0B")
	colorSuccess = lipgloss.Color("#22C55E")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	styleColumnHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	styleCardSelected = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	styleAlertBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorDanger).
			Padding(1, 3)

	styleDegraded = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleStatusPending   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleStatusCooking   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	styleStatusReady     = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleStatusCompleted = lipgloss.NewStyle().Foreground(colorMuted)
)

func statusBadge(status string) string {
	switch status {
	case "pending":
		return styleStatusPending.Render("PENDING")
	case "cooking":
		return styleStatusCooking.Render("COOKING")
	case "ready":
		return styleStatusReady.Render("READY")
	case "completed":
		return styleStatusCompleted.Render("COMPLETED")
	default:
		return styleMuted.Render(status)
	}
}
