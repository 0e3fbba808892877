// Package pipeline computes budget projections from a ledger snapshot.
// Every function here is pure: the clock is always passed in.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

// WindowDays is the length of the trailing daily window.
const WindowDays = 30

// Window is the trailing period that bounds daily transactions.
const Window = WindowDays * 24 * time.Hour

var (
	dayMs      = decimal.NewFromInt(int64(24 * time.Hour / time.Millisecond))
	windowDays = decimal.NewFromInt(WindowDays)
	monthsInYr = decimal.NewFromInt(12)
	hundred    = decimal.NewFromInt(100)
	evenSplit  = map[model.Segment]decimal.Decimal{
		model.SegmentBills:    decimal.NewFromInt(33),
		model.SegmentSpecials: decimal.NewFromInt(33),
		model.SegmentDaily:    decimal.NewFromInt(34),
	}
)

// Formula selects how a partially observed daily window is extrapolated.
type Formula int

const (
	// FormulaBlend fills the unobserved part of the window with the daily
	// budget and adds actual spend for the observed part.
	FormulaBlend Formula = iota
	// FormulaRatio scales the observed spend to 30 days: total/days*30.
	FormulaRatio
)

func (f Formula) String() string {
	switch f {
	case FormulaBlend:
		return "blend"
	case FormulaRatio:
		return "ratio"
	}
	return fmt.Sprintf("Formula(%d)", int(f))
}

// ParseFormula maps a config value to a Formula. Empty selects blend.
func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blend":
		return FormulaBlend, nil
	case "ratio":
		return FormulaRatio, nil
	}
	return FormulaBlend, fmt.Errorf("unknown daily formula %q (want blend or ratio)", s)
}

// SegmentTotal returns the signed projected spend for one segment using the
// blend formula for daily.
func SegmentTotal(l model.Ledger, s model.Segment, now time.Time) decimal.Decimal {
	return SegmentTotalWith(l, s, now, FormulaBlend)
}

// SegmentTotalWith is SegmentTotal with an explicit daily formula.
//
// Bills is the lifetime signed sum. Specials is the lifetime signed sum
// divided by 12. Daily is derived from the trailing 30-day window, see
// DailyWindow.
func SegmentTotalWith(l model.Ledger, s model.Segment, now time.Time, f Formula) decimal.Decimal {
	switch s {
	case model.SegmentBills:
		return signedSum(FilterBySegment(l.Expenses, model.SegmentBills))
	case model.SegmentSpecials:
		return signedSum(FilterBySegment(l.Expenses, model.SegmentSpecials)).Div(monthsInYr)
	case model.SegmentDaily:
		total, _ := dailyTotal(l, now, f)
		return total
	}
	panic("pipeline: unknown segment " + string(s))
}

// DailyWindow summarizes the daily transactions inside the window.
func DailyWindow(l model.Ledger, now time.Time) model.DailyWindow {
	txs := FilterWindow(FilterBySegment(l.Expenses, model.SegmentDaily), now)
	w := model.DailyWindow{Transactions: len(txs)}
	if len(txs) == 0 {
		return w
	}

	earliest := txs[0].Date
	for _, t := range txs[1:] {
		if t.Date.Before(earliest) {
			earliest = t.Date
		}
	}

	days := decimal.NewFromInt(now.UnixMilli() - earliest.UnixMilli()).Div(dayMs)
	w.DaysOfData = decimal.Max(decimal.NewFromInt(1), days)
	w.Actual = signedSum(txs)
	return w
}

func dailyTotal(l model.Ledger, now time.Time, f Formula) (decimal.Decimal, model.DailyWindow) {
	w := DailyWindow(l, now)
	if w.Transactions == 0 {
		return l.Daily.Mul(windowDays), w
	}
	if w.DaysOfData.GreaterThanOrEqual(windowDays) {
		return w.Actual, w
	}
	switch f {
	case FormulaRatio:
		return w.Actual.Div(w.DaysOfData).Mul(windowDays), w
	default:
		return l.Daily.Mul(windowDays.Sub(w.DaysOfData)).Add(w.Actual), w
	}
}

// Nominal returns the monthly-equivalent budget for a segment.
func Nominal(l model.Ledger, s model.Segment) decimal.Decimal {
	if s == model.SegmentDaily {
		return l.Daily.Mul(windowDays)
	}
	return l.Knob(s)
}

// DisplayValue is the larger of the nominal budget and the projected total,
// so under-spending never shrinks a segment below its allocation.
func DisplayValue(l model.Ledger, s model.Segment, now time.Time, f Formula) decimal.Decimal {
	return decimal.Max(Nominal(l, s), SegmentTotalWith(l, s, now, f))
}

// Project computes every display number for the ledger at now.
func Project(l model.Ledger, now time.Time, f Formula) model.Projection {
	p := model.Projection{At: now}

	dailyTot, window := dailyTotal(l, now, f)
	p.Window = window

	totals := map[model.Segment]decimal.Decimal{
		model.SegmentBills:    SegmentTotalWith(l, model.SegmentBills, now, f),
		model.SegmentSpecials: SegmentTotalWith(l, model.SegmentSpecials, now, f),
		model.SegmentDaily:    dailyTot,
	}

	stats := make(map[model.Segment]*model.SegmentStats, len(model.Segments))
	for _, s := range model.Segments {
		nominal := Nominal(l, s)
		st := &model.SegmentStats{
			Segment:    s,
			Nominal:    nominal,
			Total:      totals[s],
			Display:    decimal.Max(nominal, totals[s]),
			OverBudget: totals[s].GreaterThan(nominal),
		}
		stats[s] = st
		p.TotalBudget = p.TotalBudget.Add(st.Display)
	}

	for _, s := range model.Segments {
		if p.TotalBudget.IsPositive() {
			stats[s].Percent = stats[s].Display.Div(p.TotalBudget).Mul(hundred)
		} else {
			stats[s].Percent = evenSplit[s]
		}
	}

	p.Bills = *stats[model.SegmentBills]
	p.Specials = *stats[model.SegmentSpecials]
	p.Daily = *stats[model.SegmentDaily]
	p.Categories = Breakdown(l, now)
	return p
}

// Breakdown splits windowed daily spend across the fixed daily categories.
// Unknown categories are ignored. Shares are taken of the sum of positive
// category totals and truncated, so entries never add up to more than 100.
// Only categories with a positive share are returned, in fixed order.
func Breakdown(l model.Ledger, now time.Time) []model.CategoryShare {
	txs := FilterWindow(FilterBySegment(l.Expenses, model.SegmentDaily), now)

	sums := make(map[model.Category]decimal.Decimal, len(model.DailyCategories))
	for _, t := range txs {
		if !t.Category.IsDaily() {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Signed())
	}

	positive := decimal.Zero
	for _, v := range sums {
		if v.IsPositive() {
			positive = positive.Add(v)
		}
	}
	if !positive.IsPositive() {
		return nil
	}

	var shares []model.CategoryShare
	for _, c := range model.DailyCategories {
		v := sums[c]
		if !v.IsPositive() {
			continue
		}
		pct, _ := v.Mul(hundred).QuoRem(positive, 12)
		if !pct.IsPositive() {
			continue
		}
		shares = append(shares, model.CategoryShare{Category: c, Amount: v, Percent: pct})
	}
	return shares
}

func signedSum(txs []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Signed())
	}
	return sum
}
