package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

// StoredTransaction is a transaction as read from stored or imported data,
// in whichever schema version it was written.
type StoredTransaction interface {
	Upgrade() model.Transaction
}

// LegacyTransaction is the oldest schema, written before income tracking
// existed. Every legacy transaction is an expense.
type LegacyTransaction struct {
	ID       int64
	Amount   decimal.Decimal
	Segment  model.Segment
	Category model.Category
	Label    string
	Date     time.Time
}

// Upgrade converts a legacy record to the current schema.
func (t LegacyTransaction) Upgrade() model.Transaction {
	return model.Transaction{
		ID:       t.ID,
		Amount:   t.Amount,
		Segment:  t.Segment,
		Category: t.Category,
		Label:    t.Label,
		Type:     model.TypeExpense,
		Date:     t.Date,
	}
}

// CurrentTransaction is a record that already carries its type.
type CurrentTransaction struct {
	model.Transaction
}

// Upgrade returns the record unchanged.
func (t CurrentTransaction) Upgrade() model.Transaction {
	return t.Transaction
}

// StoredLedger is a ledger whose transactions have not been upgraded yet.
type StoredLedger struct {
	Bills    decimal.Decimal
	Specials decimal.Decimal
	Daily    decimal.Decimal
	Expenses []StoredTransaction
}

// Upgrade converts every transaction to the current schema, preserving order.
func (s StoredLedger) Upgrade() model.Ledger {
	l := model.Ledger{
		Bills:    s.Bills,
		Specials: s.Specials,
		Daily:    s.Daily,
		Expenses: make([]model.Transaction, 0, len(s.Expenses)),
	}
	for _, st := range s.Expenses {
		l.Expenses = append(l.Expenses, st.Upgrade())
	}
	return l
}

// Migrate brings an in-memory ledger to the current schema: transactions
// without a type become expenses. Nothing else is touched, and running it
// on an already migrated ledger returns an equal ledger.
func Migrate(l model.Ledger) model.Ledger {
	out := l.Clone()
	for i := range out.Expenses {
		if out.Expenses[i].Type == "" {
			out.Expenses[i].Type = model.TypeExpense
		}
	}
	return out
}
