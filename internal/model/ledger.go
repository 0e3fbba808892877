// Package model defines domain types for budgetsplit ledgers and projections.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Segment is one of the three independently modeled budget segments.
type Segment string

const (
	SegmentDaily    Segment = "daily"
	SegmentBills    Segment = "bills"
	SegmentSpecials Segment = "specials"
)

// Segments lists every segment in display order.
var Segments = []Segment{SegmentBills, SegmentSpecials, SegmentDaily}

// Valid reports whether s is a known segment.
func (s Segment) Valid() bool {
	switch s {
	case SegmentDaily, SegmentBills, SegmentSpecials:
		return true
	}
	return false
}

// Title returns the display name of the segment.
func (s Segment) Title() string {
	switch s {
	case SegmentDaily:
		return "Daily"
	case SegmentBills:
		return "Bills"
	case SegmentSpecials:
		return "Specials"
	}
	return string(s)
}

// TxType tells whether a transaction adds to or subtracts from its segment.
// The empty value only appears on transactions read from the oldest schema.
type TxType string

const (
	TypeExpense TxType = "expense"
	TypeIncome  TxType = "income"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Category labels a transaction. Bills and specials accept any text; daily
// transactions use one of DailyCategories.
type Category string

const (
	CategoryInFood        Category = "In Food"
	CategoryOutFood       Category = "Out Food"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryOthers        Category = "Others"
)

// DailyCategories is the fixed daily category set in breakdown order.
var DailyCategories = []Category{
	CategoryInFood,
	CategoryOutFood,
	CategoryShopping,
	CategoryEntertainment,
	CategoryOthers,
}

// IsDaily reports whether c belongs to the fixed daily category set.
func (c Category) IsDaily() bool {
	for _, d := range DailyCategories {
		if c == d {
			return true
		}
	}
	return false
}

// Transaction is one ledger entry. Amount is always positive; Type carries the sign.
type Transaction struct {
	ID       int64
	Amount   decimal.Decimal
	Segment  Segment
	Category Category
	Label    string
	Type     TxType
	Date     time.Time
}

// Sign returns -1 for income and 1 for everything else.
func (t Transaction) Sign() decimal.Decimal {
	if t.Type == TypeIncome {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Signed returns the amount with the type's sign applied.
func (t Transaction) Signed() decimal.Decimal {
	return t.Amount.Mul(t.Sign())
}

// Equal compares two transactions by value, treating decimals and times numerically.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Amount.Equal(o.Amount) &&
		t.Segment == o.Segment &&
		t.Category == o.Category &&
		t.Label == o.Label &&
		t.Type == o.Type &&
		t.Date.Equal(o.Date)
}

// Ledger holds the three budget knobs and the transaction list.
// Bills and Specials are monthly targets, Daily is a per-day rate.
type Ledger struct {
	Bills    decimal.Decimal
	Specials decimal.Decimal
	Daily    decimal.Decimal
	Expenses []Transaction
}

// Knob returns the configured budget for a segment as entered by the user.
func (l Ledger) Knob(s Segment) decimal.Decimal {
	switch s {
	case SegmentBills:
		return l.Bills
	case SegmentSpecials:
		return l.Specials
	case SegmentDaily:
		return l.Daily
	}
	panic("model: unknown segment " + string(s))
}

// Clone returns a deep copy so callers can derive a new ledger without
// touching the original's backing array.
func (l Ledger) Clone() Ledger {
	out := l
	if l.Expenses != nil {
		out.Expenses = make([]Transaction, len(l.Expenses))
		copy(out.Expenses, l.Expenses)
	}
	return out
}

// Find returns the transaction with the given id.
func (l Ledger) Find(id int64) (Transaction, bool) {
	for _, t := range l.Expenses {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// Equal compares two ledgers by value, including transaction order.
func (l Ledger) Equal(o Ledger) bool {
	if !l.Bills.Equal(o.Bills) || !l.Specials.Equal(o.Specials) || !l.Daily.Equal(o.Daily) {
		return false
	}
	if len(l.Expenses) != len(o.Expenses) {
		return false
	}
	for i := range l.Expenses {
		if !l.Expenses[i].Equal(o.Expenses[i]) {
			return false
		}
	}
	return true
}
