package ledger

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

// ImportChoice is the host's decision for an incoming ledger.
type ImportChoice int

const (
	ChoiceSkip ImportChoice = iota
	ChoiceMerge
	ChoiceReplace
)

func (c ImportChoice) String() string {
	switch c {
	case ChoiceSkip:
		return "skip"
	case ChoiceMerge:
		return "merge"
	case ChoiceReplace:
		return "replace"
	}
	return fmt.Sprintf("ImportChoice(%d)", int(c))
}

// Merge combines a local ledger with an imported one. Budget knobs come from
// imported. Transactions are unioned by id; on an id collision the local copy
// is kept and the imported one dropped. The result is migrated and sorted by
// date, newest first. Neither input is modified.
func Merge(local, imported model.Ledger) model.Ledger {
	out := model.Ledger{
		Bills:    imported.Bills,
		Specials: imported.Specials,
		Daily:    imported.Daily,
		Expenses: make([]model.Transaction, 0, len(local.Expenses)+len(imported.Expenses)),
	}

	seen := make(map[int64]struct{}, len(local.Expenses))
	for _, t := range local.Expenses {
		seen[t.ID] = struct{}{}
		out.Expenses = append(out.Expenses, t)
	}
	for _, t := range imported.Expenses {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out.Expenses = append(out.Expenses, t)
	}

	out = Migrate(out)
	SortNewestFirst(out.Expenses)
	return out
}

// Replace returns the imported ledger, migrated, as the new local ledger.
func Replace(imported model.Ledger) model.Ledger {
	return Migrate(imported)
}

// Apply resolves an import according to choice. The bool is false when the
// import was skipped and local is returned as is.
func Apply(local, imported model.Ledger, choice ImportChoice) (model.Ledger, bool) {
	switch choice {
	case ChoiceMerge:
		return Merge(local, imported), true
	case ChoiceReplace:
		return Replace(imported), true
	default:
		return local, false
	}
}

// SortNewestFirst orders transactions by date descending. Equal dates keep
// their relative order.
func SortNewestFirst(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}
