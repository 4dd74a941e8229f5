package components

import (
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. message is shown on the
// right, in the warning color when isErr is set.
func RenderStatusBar(width int, message string, isErr bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Orange)
	}

	left := " [?]help  [w]rite  [q]uit"
	right := ""
	if message != "" {
		right = message + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return base.Render(left+strings.Repeat(" ", padding)) + msgStyle.Render(right)
}
