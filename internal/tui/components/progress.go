package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/orange/red based on how much of a budget is used.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct > 1:
		return t.Red
	case pct >= 0.8:
		return t.Orange
	default:
		return t.Green
	}
}

// BudgetBar renders a labeled bar for spend against a budget. pct is
// spend/budget and may exceed 1; the bar is clamped but the label is not.
func BudgetBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}

	color := ColorForPct(pct)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(shown) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", pct*100))
}

// AllocationBar renders one stacked bar split by the given shares (0-100).
// The last part absorbs rounding so the bar is exactly width cells.
func AllocationBar(shares []float64, colors []lipgloss.Color, width int) string {
	t := theme.Active
	if width <= 0 || len(shares) == 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	for i, share := range shares {
		cells := int(share*float64(width)/100 + 0.5)
		if i == len(shares)-1 {
			cells = width - used
		}
		cells = max(0, min(cells, width-used))
		used += cells
		style := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Background(t.Surface)
		b.WriteString(style.Render(strings.Repeat("█", cells)))
	}
	return b.String()
}
