package pipeline

import (
	"time"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

// InWindow reports whether t falls inside the trailing window ending at now.
func InWindow(t model.Transaction, now time.Time) bool {
	return !t.Date.Before(now.Add(-Window))
}

// FilterWindow returns transactions dated at or after now minus Window.
func FilterWindow(txs []model.Transaction, now time.Time) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if InWindow(t, now) {
			result = append(result, t)
		}
	}
	return result
}

// FilterBySegment returns transactions belonging to segment s.
func FilterBySegment(txs []model.Transaction, s model.Segment) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if t.Segment == s {
			result = append(result, t)
		}
	}
	return result
}

// FilterByTime returns transactions dated within [since, until).
// A zero bound is open.
func FilterByTime(txs []model.Transaction, since, until time.Time) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}

	var result []model.Transaction
	for _, t := range txs {
		if !since.IsZero() && t.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !t.Date.Before(until) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// ExportView returns the subset of l that travels in a sync token: every
// bills and specials transaction, and daily transactions inside the window.
// Knobs are kept and transaction order is preserved.
func ExportView(l model.Ledger, now time.Time) model.Ledger {
	out := model.Ledger{
		Bills:    l.Bills,
		Specials: l.Specials,
		Daily:    l.Daily,
		Expenses: make([]model.Transaction, 0, len(l.Expenses)),
	}
	for _, t := range l.Expenses {
		if t.Segment == model.SegmentDaily && !InWindow(t, now) {
			continue
		}
		out.Expenses = append(out.Expenses, t)
	}
	return out
}
