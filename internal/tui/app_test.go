package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/book"
	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
	"github.com/theirongolddev/budgetsplit/internal/store"
	"github.com/theirongolddev/budgetsplit/internal/tui/components"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testApp(t *testing.T, labels ...string) (App, *book.Book) {
	t.Helper()
	b, err := book.Open(&store.Memory{}, func() time.Time { return testNow }, nil)
	if err != nil {
		t.Fatalf("book.Open: %v", err)
	}
	for _, l := range labels {
		if _, err := b.Add(ledger.Draft{Amount: "5", Label: l, Segment: model.SegmentDaily}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	a := NewApp(b, pipeline.FormulaBlend, "$")
	a.width, a.height = 100, 30
	return a, b
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2 // one column of padding on each side
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func TestTabNavigation(t *testing.T) {
	a, _ := testApp(t)

	a = press(t, a, "t")
	if a.activeTab != tabTransactions {
		t.Fatalf("after t: tab = %d, want transactions", a.activeTab)
	}
	a = press(t, a, "right")
	if a.activeTab != tabBudgets {
		t.Fatalf("after right: tab = %d, want budgets", a.activeTab)
	}
	a = press(t, a, "right")
	if a.activeTab != tabOverview {
		t.Fatalf("right should wrap to overview, got %d", a.activeTab)
	}
	a = press(t, a, "left")
	if a.activeTab != tabBudgets {
		t.Fatalf("left should wrap to budgets, got %d", a.activeTab)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	a, b := testApp(t, "first", "second")
	a = press(t, a, "t", "j", "d")

	if len(b.Ledger().Expenses) != 2 {
		t.Fatal("first d deleted without confirmation")
	}
	if !strings.Contains(a.status, "again") {
		t.Fatalf("status = %q, want confirmation prompt", a.status)
	}

	a = press(t, a, "d")
	l := b.Ledger()
	if len(l.Expenses) != 1 {
		t.Fatalf("len = %d after d d, want 1", len(l.Expenses))
	}
	// newest first: cursor 1 was "first"
	if l.Expenses[0].Label != "second" {
		t.Fatalf("remaining = %q, want second", l.Expenses[0].Label)
	}
	if a.txState.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", a.txState.cursor)
	}
}

func TestDeleteCancelledByOtherKey(t *testing.T) {
	a, b := testApp(t, "only")
	a = press(t, a, "t", "d", "j", "d")

	if len(b.Ledger().Expenses) != 1 {
		t.Fatal("an intervening key should cancel the pending delete")
	}
	if a.txState.confirmID == 0 {
		t.Fatal("the last d should start a new confirmation")
	}
}

func TestBudgetEdit(t *testing.T) {
	a, b := testApp(t)
	a = press(t, a, "b", "j", "j", "enter")
	if !a.budgets.editing {
		t.Fatal("enter did not start editing")
	}

	a.budgets.input.SetValue("12,5")
	a = press(t, a, "enter")
	if a.budgets.editing {
		t.Fatalf("still editing after a valid value: %v", a.budgets.saveErr)
	}
	if got := b.Ledger().Daily; !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("daily = %s, want 12.5", got)
	}
	if !a.proj.Daily.Nominal.Equal(decimal.NewFromInt(375)) {
		t.Fatalf("projection not refreshed: nominal = %s", a.proj.Daily.Nominal)
	}
}

func TestBudgetEditRejectsGarbage(t *testing.T) {
	a, b := testApp(t)
	a = press(t, a, "b", "enter")
	a.budgets.input.SetValue("lots")
	a = press(t, a, "enter")

	if !a.budgets.editing || a.budgets.saveErr == nil {
		t.Fatal("invalid value should keep the editor open with an error")
	}
	if !b.Ledger().Bills.IsZero() {
		t.Fatal("invalid value changed the ledger")
	}
	a = press(t, a, "esc")
	if a.budgets.editing {
		t.Fatal("esc did not close the editor")
	}
}

func TestViewRenders(t *testing.T) {
	a, _ := testApp(t, "coffee")
	for _, tab := range []int{tabOverview, tabTransactions, tabBudgets} {
		a.activeTab = tab
		if h := lipgloss.Height(a.View()); h != a.height {
			t.Fatalf("tab %d view height = %d, want %d", tab, h, a.height)
		}
	}

	a.width = 40
	if v := a.View(); !strings.Contains(v, "too narrow") {
		t.Fatal("narrow terminal should show the width warning")
	}
}
