package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetsplit/internal/book"
	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/tui/components"
	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// budgetsState tracks the budgets tab. The cursor indexes model.Segments.
type budgetsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saveErr error
}

func newBudgetInput(value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20
	ti.Placeholder = "0"
	ti.SetValue(value)
	return ti
}

func (a App) updateBudgetsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.budgets.cursor = min(a.budgets.cursor+1, len(model.Segments)-1)
	case "k", "up":
		a.budgets.cursor = max(a.budgets.cursor-1, 0)
	case "enter":
		s := model.Segments[a.budgets.cursor]
		a.budgets.editing = true
		a.budgets.saveErr = nil
		a.budgets.input = newBudgetInput(a.ledger.Knob(s).String())
		a.budgets.input.Focus()
		return a, a.budgets.input.Cursor.BlinkCmd(), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateBudgetInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.budgetSave()
		// A rejected value keeps the input open; a failed write does not.
		a.budgets.editing = a.budgets.saveErr != nil && !errors.Is(a.budgets.saveErr, book.ErrNotSaved)
		return a, nil
	case "esc":
		a.budgets.editing = false
		a.budgets.saveErr = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.budgets.input, cmd = a.budgets.input.Update(msg)
	return a, cmd
}

func (a *App) budgetSave() {
	s := model.Segments[a.budgets.cursor]
	raw := strings.TrimSpace(a.budgets.input.Value())
	if raw == "" {
		raw = "0"
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		a.budgets.saveErr = fmt.Errorf("%q is not a number", raw)
		return
	}
	a.budgets.saveErr = a.book.SetKnob(s, v)
	if a.budgets.saveErr == nil {
		a.status = fmt.Sprintf("%s budget set to %s", s.Title(), cli.FormatMoney(v, a.symbol))
	}
	a.recompute()
}

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	units := map[model.Segment]string{
		model.SegmentBills:    "per month",
		model.SegmentSpecials: "per month",
		model.SegmentDaily:    "per day",
	}

	var b strings.Builder
	for i, s := range model.Segments {
		label := fmt.Sprintf("%-10s", s.Title())
		var value string
		if a.budgets.editing && i == a.budgets.cursor {
			value = a.budgets.input.View()
		} else {
			value = valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(a.ledger.Knob(s), a.symbol)))
		}
		line := labelStyle.Render(label) + value + dimStyle.Render("  "+units[s])
		if i == a.budgets.cursor && !a.budgets.editing {
			line = selStyle.Render(fmt.Sprintf("%-10s%12s  %s", s.Title(), cli.FormatMoney(a.ledger.Knob(s), a.symbol), units[s]))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	nominal := a.proj.Daily.Nominal
	b.WriteString(dimStyle.Render(fmt.Sprintf("Daily budget covers %s over 30 days", cli.FormatMoney(nominal, a.symbol))))
	b.WriteString("\n")
	switch {
	case a.budgets.saveErr != nil:
		b.WriteString(errStyle.Render("Error: " + a.budgets.saveErr.Error()))
	case a.budgets.editing:
		b.WriteString(dimStyle.Render("Enter to save, Esc to cancel"))
	default:
		b.WriteString(dimStyle.Render("j/k to select, Enter to edit"))
	}

	return components.ContentCard("Budgets", b.String(), min(cw, 60))
}
