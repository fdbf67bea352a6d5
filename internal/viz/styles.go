package viz

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	LabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(24)
	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	GraphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	excellentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("48")).Bold(true)
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	poorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("48"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// QualityStyle picks the style matching a quality band label.
func QualityStyle(quality string) lipgloss.Style {
	switch quality {
	case "Excellent":
		return excellentStyle
	case "Good":
		return goodStyle
	default:
		return poorStyle
	}
}

// PassFail renders a colored PASS or FAIL token.
func PassFail(passed bool) string {
	if passed {
		return passStyle.Render("PASS")
	}
	return failStyle.Render("FAIL")
}
