// Package tui provides the interactive Bubble Tea dashboard for budgetsplit.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/budgetsplit/internal/book"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
	"github.com/theirongolddev/budgetsplit/internal/tui/components"
	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabTransactions
	tabBudgets
)

// App is the root Bubble Tea model.
type App struct {
	book    *book.Book
	formula pipeline.Formula
	symbol  string

	// Snapshot taken by recompute
	ledger model.Ledger
	proj   model.Projection

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string
	unsaved   bool

	// Per-tab state
	txState txState
	budgets budgetsState

	// Quick-add form (huh)
	addForm *huh.Form
	addVals *addValues
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
	refreshInterval  = time.Minute
)

// NewApp creates a new TUI app model over an open book.
func NewApp(b *book.Book, f pipeline.Formula, symbol string) App {
	a := App{
		book:    b,
		formula: f,
		symbol:  symbol,
	}
	a.recompute()
	return a
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.EnableMouseCellMotion, tickCmd())
}

// recompute re-reads the ledger and re-runs the projection. The daily
// window slides with the clock, so this also runs on every tick.
func (a *App) recompute() {
	a.ledger = a.book.Ledger()
	a.proj = a.book.Project(a.formula)
	a.unsaved = a.book.Dirty()

	if a.txState.cursor >= len(a.ledger.Expenses) {
		a.txState.cursor = len(a.ledger.Expenses) - 1
	}
	if a.txState.cursor < 0 {
		a.txState.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(min(msg.Width, 70))
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.addForm != nil || a.budgets.editing {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabTransactions {
				a.txState.move(-1, len(a.ledger.Expenses))
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabTransactions {
				a.txState.move(1, len(a.ledger.Expenses))
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tickMsg:
		if a.unsaved {
			if err := a.book.Flush(); err == nil {
				a.status = "Saved"
			}
		}
		a.recompute()
		return a, tickCmd()

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.addForm != nil {
			return a.updateAddForm(msg)
		}

		if a.budgets.editing {
			return a.updateBudgetInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Any key clears the previous flash message, except the second
		// press of a delete confirmation.
		if !(key == "d" && a.txState.confirmID != 0) {
			a.status = ""
			a.txState.confirmID = 0
		}

		if a.activeTab == tabTransactions {
			if m, cmd, ok := a.updateTransactionsKey(key); ok {
				return m, cmd
			}
		}
		if a.activeTab == tabBudgets {
			if m, cmd, ok := a.updateBudgetsKey(key); ok {
				return m, cmd
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "a":
			return a.openAddForm()
		case "r":
			a.recompute()
			a.status = "Refreshed"
			return a, nil
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the add form (cursor blinks, etc.)
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}
	if a.budgets.editing {
		var cmd tea.Cmd
		a.budgets.input, cmd = a.budgets.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.addForm != nil {
		return a.viewAddForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetsplit needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o t b", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"a", "Add a transaction"},
		{"j k", "Move in lists"},
		{"d d", "Delete selected transaction"},
		{"Enter", "Edit selected budget"},
		{"Esc", "Cancel"},
		{"r", "Refresh projection"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	right := fmt.Sprintf("%s · %s", a.proj.At.Local().Format("Jan 2 15:04"), a.formula)
	statusBar := components.RenderStatusBar(w, a.status, right, a.unsaved)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
