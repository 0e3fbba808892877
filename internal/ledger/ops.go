// Package ledger holds the ledger invariants: schema migration, the import
// validation gate, merge-by-id and the add/remove/knob mutations.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

var (
	ErrEmptyInput         = errors.New("amount and label are required")
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidKnob        = errors.New("budget must be zero or positive")
	ErrUnknownTransaction = errors.New("no transaction with that id")
)

// Draft is user input for a new transaction before validation.
type Draft struct {
	Amount   string
	Label    string
	Segment  model.Segment
	Category string
	Income   bool
	Date     time.Time // zero means now
}

// Build validates a draft and turns it into a transaction stamped with id.
// Daily drafts must name a daily category; an empty one falls back to Others.
func (d Draft) Build(id int64, now time.Time) (model.Transaction, error) {
	amountStr := strings.TrimSpace(d.Amount)
	label := strings.TrimSpace(d.Label)
	if amountStr == "" || label == "" {
		return model.Transaction{}, ErrEmptyInput
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(amountStr, ",", "."))
	if err != nil || !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidAmount, d.Amount)
	}
	if !d.Segment.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown segment %q", d.Segment)
	}

	category := model.Category(strings.TrimSpace(d.Category))
	if d.Segment == model.SegmentDaily {
		if category == "" {
			category = model.CategoryOthers
		} else {
			category, err = model.ParseDailyCategory(string(category))
			if err != nil {
				return model.Transaction{}, err
			}
		}
	}

	typ := model.TypeExpense
	if d.Income {
		typ = model.TypeIncome
	}
	date := d.Date
	if date.IsZero() {
		date = now
	}

	return model.Transaction{
		ID:       id,
		Amount:   amount,
		Segment:  d.Segment,
		Category: category,
		Label:    label,
		Type:     typ,
		Date:     time.UnixMilli(date.UnixMilli()),
	}, nil
}

// NextID returns an id for a transaction created at now: the creation time
// in milliseconds, bumped past the largest existing id if needed.
func NextID(l model.Ledger, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range l.Expenses {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Add returns a copy of l with t prepended.
func Add(l model.Ledger, t model.Transaction) (model.Ledger, error) {
	if !t.Amount.IsPositive() {
		return l, ErrInvalidAmount
	}
	if _, exists := l.Find(t.ID); exists {
		return l, fmt.Errorf("duplicate transaction id %d", t.ID)
	}
	out := l.Clone()
	out.Expenses = append([]model.Transaction{t}, out.Expenses...)
	return out, nil
}

// Remove returns a copy of l without the transaction id.
func Remove(l model.Ledger, id int64) (model.Ledger, error) {
	out := l.Clone()
	for i, t := range out.Expenses {
		if t.ID == id {
			out.Expenses = append(out.Expenses[:i], out.Expenses[i+1:]...)
			return out, nil
		}
	}
	return l, fmt.Errorf("%w: %d", ErrUnknownTransaction, id)
}

// SetKnob returns a copy of l with the budget for s set to v.
func SetKnob(l model.Ledger, s model.Segment, v decimal.Decimal) (model.Ledger, error) {
	if v.IsNegative() {
		return l, fmt.Errorf("%w: %s", ErrInvalidKnob, v)
	}
	out := l.Clone()
	switch s {
	case model.SegmentBills:
		out.Bills = v
	case model.SegmentSpecials:
		out.Specials = v
	case model.SegmentDaily:
		out.Daily = v
	default:
		return l, fmt.Errorf("unknown segment %q", s)
	}
	return out, nil
}
