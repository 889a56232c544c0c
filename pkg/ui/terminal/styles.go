package terminal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Colors switch automatically between light and dark backgrounds.
var (
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	commandColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(pathColor).
			Italic(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(commandColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	listItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// statusStyle colors a request status badge.
func statusStyle(status string) *pterm.Style {
	switch status {
	case "succeeded":
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case "failed":
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	case "skipped":
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}
