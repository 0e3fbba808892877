package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// txState tracks the transactions tab.
type txState struct {
	cursor    int
	confirmID int64 // id awaiting a second "d"
}

func (s *txState) move(delta, n int) {
	s.cursor = max(0, min(s.cursor+delta, n-1))
}

func (a App) updateTransactionsKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.ledger.Expenses)
	switch key {
	case "j", "down":
		a.txState.move(1, n)
	case "k", "up":
		a.txState.move(-1, n)
	case "g":
		a.txState.cursor = 0
	case "G":
		a.txState.cursor = max(n-1, 0)
	case "d":
		if n == 0 {
			return a, nil, true
		}
		tx := a.ledger.Expenses[a.txState.cursor]
		if a.txState.confirmID != tx.ID {
			a.txState.confirmID = tx.ID
			a.status = fmt.Sprintf("Press d again to delete %q", tx.Label)
			return a, nil, true
		}
		a.txState.confirmID = 0
		if _, err := a.book.Remove(tx.ID); err != nil {
			a.status = "Delete failed: " + err.Error()
		} else {
			a.status = fmt.Sprintf("Deleted %q", tx.Label)
		}
		a.recompute()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	txs := a.ledger.Expenses
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	if len(txs) == 0 {
		return "\n" + muted.Render("  No transactions yet, press a to add one")
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	labelW := max(cw-65, 10)
	format := func(id, date, seg, cat, label, amount string) string {
		return fmt.Sprintf(" %-14s %-10s %-9s %-13s %-*s %12s ", id, date, seg, cat, labelW, truncStr(label, labelW), amount)
	}

	// Keep the cursor visible
	visible := max(h-2, 1)
	offset := 0
	if a.txState.cursor >= visible {
		offset = a.txState.cursor - visible + 1
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(format("ID", "Date", "Segment", "Category", "Label", "Amount")))
	b.WriteString("\n")
	end := min(offset+visible, len(txs))
	for i := offset; i < end; i++ {
		tx := txs[i]
		line := format(strconv.FormatInt(tx.ID, 10), cli.FormatDate(tx.Date), tx.Segment.Title(),
			string(tx.Category), tx.Label, cli.FormatSigned(tx, a.symbol))
		if i == a.txState.cursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ─── Quick add (huh form) ───────────────────────────────────────

type addValues struct {
	Amount   string
	Label    string
	Segment  model.Segment
	Category model.Category
	Income   bool
}

func newAddForm(v *addValues) *huh.Form {
	segments := make([]huh.Option[model.Segment], 0, len(model.Segments))
	for _, s := range []model.Segment{model.SegmentDaily, model.SegmentBills, model.SegmentSpecials} {
		segments = append(segments, huh.NewOption(s.Title(), s))
	}
	categories := make([]huh.Option[model.Category], 0, len(model.DailyCategories))
	for _, c := range model.DailyCategories {
		categories = append(categories, huh.NewOption(string(c), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Amount").Value(&v.Amount).Validate(validateAmount),
			huh.NewInput().Title("Label").Value(&v.Label).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return ledger.ErrEmptyInput
				}
				return nil
			}),
			huh.NewSelect[model.Segment]().Title("Segment").Options(segments...).Value(&v.Segment),
		),
		huh.NewGroup(
			huh.NewSelect[model.Category]().Title("Category").Options(categories...).Value(&v.Category),
		).WithHideFunc(func() bool { return v.Segment != model.SegmentDaily }),
		huh.NewGroup(
			huh.NewConfirm().Title("Income?").Affirmative("Income").Negative("Expense").Value(&v.Income),
		),
	).WithShowHelp(true)
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil || !d.IsPositive() {
		return ledger.ErrInvalidAmount
	}
	return nil
}

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	a.addVals = &addValues{Segment: model.SegmentDaily, Category: model.CategoryOthers}
	a.addForm = newAddForm(a.addVals)
	if a.width > 0 {
		a.addForm = a.addForm.WithWidth(min(a.width, 70))
	}
	return a, a.addForm.Init()
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.addForm = nil
		a.status = "Add cancelled"
		return a, nil
	}

	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	switch a.addForm.State {
	case huh.StateCompleted:
		a.submitAdd()
		a.addForm = nil
		return a, nil
	case huh.StateAborted:
		a.addForm = nil
		a.status = "Add cancelled"
		return a, nil
	}
	return a, cmd
}

func (a *App) submitAdd() {
	v := a.addVals
	d := ledger.Draft{
		Amount:  v.Amount,
		Label:   v.Label,
		Segment: v.Segment,
		Income:  v.Income,
	}
	if v.Segment == model.SegmentDaily {
		d.Category = string(v.Category)
	}
	tx, err := a.book.Add(d)
	switch {
	case err == nil:
		a.status = fmt.Sprintf("Added %s %s", cli.FormatSigned(tx, a.symbol), tx.Label)
		a.txState.cursor = 0
	default:
		a.status = "Add failed: " + err.Error()
	}
	a.recompute()
}

func (a App) viewAddForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("Add transaction") +
			"\n\n" + a.addForm.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
