package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders one row of block characters scaled to the largest value.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// SpendChart renders one bar per day, oldest on the left. Cells above limit
// are drawn in the warning color and the limit row is marked on the axis.
// A non-positive limit draws plain bars. Small areas fall back to a sparkline.
func SpendChart(values []float64, labels []string, limit float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 3 {
		return Sparkline(values, t.Daily)
	}

	peak := limit
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	step := chartTickStep(peak)
	for math.Ceil(peak/step) > float64(max(height/2, 2)) {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	ticks := max(int(math.Round(ceiling/step)), 1)
	rowsPerTick := max(height/ticks, 1)
	chartH := rowsPerTick * ticks

	labelW := max(len(formatChartLabel(ceiling))+1, 4)
	chartW := max(width-labelW-1, 5)

	n := len(values)
	barW := 1
	gap := 0
	if n > 1 && (chartW+1)/n >= 3 {
		gap = 1
		barW = min((chartW-(n-1))/n, 4)
	} else if n > chartW {
		// Keep the most recent days.
		values = values[n-chartW:]
		if len(labels) == n {
			labels = labels[n-chartW:]
		}
		n = chartW
	}
	axisLen := n*barW + max(0, n-1)*gap

	limitRow := 0
	if limit > 0 {
		limitRow = int(math.Ceil(limit / ceiling * float64(chartH)))
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	under := lipgloss.NewStyle().Foreground(t.Daily).Background(t.Surface)
	over := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	mark := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(step * float64(row/rowsPerTick))
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s", labelW, label)))
		if row == limitRow {
			b.WriteString(mark.Render("┤"))
		} else {
			b.WriteString(axis.Render("│"))
		}

		style := under
		if limit > 0 && row > limitRow {
			style = over
		}
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(bg.Render(" "))
			}
			var cell string
			switch {
			case v >= top:
				cell = "█"
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(sparkBlocks)))
				cell = string(sparkBlocks[max(0, min(idx, len(sparkBlocks)-1))])
			case row == limitRow:
				b.WriteString(mark.Render(strings.Repeat("╌", barW)))
				continue
			default:
				b.WriteString(bg.Render(strings.Repeat(" ", barW)))
				continue
			}
			b.WriteString(style.Render(strings.Repeat(cell, barW)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s", labelW, "0")))
	b.WriteString(axis.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n && n > 1 {
		first, last := labels[0], labels[n-1]
		pad := axisLen - len(first) - len(last)
		if pad > 0 {
			b.WriteString("\n")
			b.WriteString(bg.Render(strings.Repeat(" ", labelW+1)))
			b.WriteString(axis.Render(first + strings.Repeat(" ", pad) + last))
		}
	}

	return b.String()
}

// chartTickStep picks a 1/2/5 tick interval giving roughly five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
