package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
	"github.com/theirongolddev/budgetsplit/internal/tui/components"
	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const recentCount = 5

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	p := a.proj
	var b strings.Builder

	// Row 1: one card per segment plus the total
	cards := make([]components.Metric, 0, len(model.Segments)+1)
	for _, s := range model.Segments {
		st := p.Segment(s)
		cards = append(cards, components.Metric{
			Label:  s.Title(),
			Value:  cli.FormatMoney(st.Display, a.symbol),
			Detail: fmt.Sprintf("%s of %s", cli.FormatMoney(st.Total, a.symbol), cli.FormatMoney(st.Nominal, a.symbol)),
			Accent: t.Segment(s),
			Alert:  st.OverBudget,
		})
	}
	cards = append(cards, components.Metric{
		Label:  "Month",
		Value:  cli.FormatMoney(p.TotalBudget, a.symbol),
		Detail: fmt.Sprintf("%d transactions", len(a.ledger.Expenses)),
	})
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: allocation and usage side by side
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Allocation", a.renderAllocation(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Projected vs budget", a.renderUsage(components.CardInnerWidth(halves[1])), halves[1]),
	}))
	b.WriteString("\n")

	// Row 3: categories and recent activity
	b.WriteString(components.CardRow([]string{
		components.ContentCard(fmt.Sprintf("Daily by category (%dd)", pipeline.WindowDays),
			a.renderCategories(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Recent", a.renderRecent(components.CardInnerWidth(halves[1])), halves[1]),
	}))
	b.WriteString("\n")

	// Row 4: daily spending per day
	b.WriteString(components.ContentCard("Daily spending per day", a.renderSpendChart(components.CardInnerWidth(cw)), cw))

	return b.String()
}

const spendChartHeight = 8

func (a App) renderSpendChart(innerW int) string {
	now := a.proj.At
	days := pipeline.AggregateDays(a.ledger.Expenses, now.AddDate(0, 0, -(pipeline.WindowDays-1)), now)

	// AggregateDays is newest first; the chart reads left to right.
	values := make([]float64, len(days))
	labels := make([]string, len(days))
	for i, d := range days {
		j := len(days) - 1 - i
		values[j] = d.Net().InexactFloat64()
		labels[j] = d.Date.Format("Jan 2")
	}
	return components.SpendChart(values, labels, a.ledger.Daily.InexactFloat64(), innerW, spendChartHeight)
}

func (a App) renderAllocation(innerW int) string {
	t := theme.Active
	p := a.proj

	shares := make([]float64, 0, len(model.Segments))
	colors := make([]lipgloss.Color, 0, len(model.Segments))
	for _, s := range model.Segments {
		shares = append(shares, p.Segment(s).Percent.InexactFloat64())
		colors = append(colors, t.Segment(s))
	}

	var b strings.Builder
	b.WriteString(components.AllocationBar(shares, colors, innerW))
	b.WriteString("\n")
	for _, s := range model.Segments {
		swatch := lipgloss.NewStyle().Foreground(t.Segment(s)).Background(t.Surface).Render("■")
		label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render(fmt.Sprintf(" %-9s %6s", s.Title(), cli.FormatPercent(p.Segment(s).Percent)))
		b.WriteString(swatch + label + "\n")
	}

	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	w := p.Window
	if w.Transactions == 0 {
		b.WriteString(dim.Render("No daily spending yet, daily uses its full budget"))
	} else {
		b.WriteString(dim.Render(fmt.Sprintf("Daily: %d over %s", w.Transactions, cli.FormatDays(w.DaysOfData))))
	}
	return b.String()
}

func (a App) renderUsage(innerW int) string {
	labelW := 9
	barW := max(innerW-labelW-7, 8)

	var b strings.Builder
	for i, s := range model.Segments {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(components.BudgetBar(s.Title(), usage(a.proj.Segment(s)), labelW, barW))
	}
	return b.String()
}

// usage is projected spend as a fraction of the nominal budget. A segment
// with no budget but positive spend reads as fully over.
func usage(st model.SegmentStats) float64 {
	if !st.Nominal.IsPositive() {
		if st.Total.IsPositive() {
			return 1.01
		}
		return 0
	}
	return st.Total.Div(st.Nominal).InexactFloat64()
}

func (a App) renderCategories(innerW int) string {
	t := theme.Active
	shares := a.proj.Categories
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(shares) == 0 {
		return muted.Render("Nothing spent in the window")
	}

	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Daily).Background(t.Surface)
	barW := max(innerW-34, 4)

	var b strings.Builder
	for i, c := range shares {
		if i > 0 {
			b.WriteString("\n")
		}
		n := int(c.Percent.Mul(decimal.NewFromInt(int64(barW))).Div(decimal.NewFromInt(100)).IntPart())
		b.WriteString(muted.Render(fmt.Sprintf("%-14s", c.Category)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%11s ", cli.FormatMoney(c.Amount, a.symbol))))
		b.WriteString(muted.Render(fmt.Sprintf("%6s ", cli.FormatPercent(c.Percent))))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
	}
	return b.String()
}

func (a App) renderRecent(innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	txs := a.ledger.Expenses
	if len(txs) == 0 {
		return muted.Render("No transactions yet, press a to add one")
	}
	if len(txs) > recentCount {
		txs = txs[:recentCount]
	}

	now := a.proj.At
	labelW := max(innerW-26, 6)
	var b strings.Builder
	for i, tx := range txs {
		if i > 0 {
			b.WriteString("\n")
		}
		amt := lipgloss.NewStyle().Foreground(amountColor(tx)).Background(t.Surface).
			Render(fmt.Sprintf("%12s", cli.FormatSigned(tx, a.symbol)))
		b.WriteString(muted.Render(fmt.Sprintf("%-8s ", cli.FormatAge(tx.Date, now))))
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).
			Render(fmt.Sprintf("%-*s", labelW, truncStr(tx.Label, labelW))))
		b.WriteString(amt)
	}
	return b.String()
}

func amountColor(tx model.Transaction) lipgloss.Color {
	if tx.Type == model.TypeIncome {
		return theme.Active.Green
	}
	return theme.Active.TextPrimary
}
