package components

import (
	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. message replaces the key
// hints when set; unsaved marks a ledger that failed to persist.
func RenderStatusBar(width int, message, right string, unsaved bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [q]uit"
	if message != "" {
		left = " " + message
	}
	if unsaved {
		warn := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
		right = warn.Render("unsaved") + lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("  "+right)
	}
	right += " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	gap := lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("")
	return style.Render(left + gap + right)
}
