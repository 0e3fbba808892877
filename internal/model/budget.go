package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SegmentStats holds the projection for one segment.
type SegmentStats struct {
	Segment    Segment
	Nominal    decimal.Decimal // monthly-equivalent budget (daily knob * 30 for daily)
	Total      decimal.Decimal // signed projected spend
	Display    decimal.Decimal // max(Nominal, Total)
	Percent    decimal.Decimal // share of Projection.TotalBudget, 0-100
	OverBudget bool
}

// CategoryShare is one entry of the daily category breakdown.
type CategoryShare struct {
	Category Category
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// DailyWindow describes the data behind the daily projection.
type DailyWindow struct {
	Transactions int
	DaysOfData   decimal.Decimal // zero when the window is empty
	Actual       decimal.Decimal
}

// Projection is the full set of forward-looking numbers for a ledger at a point in time.
type Projection struct {
	At          time.Time
	Bills       SegmentStats
	Specials    SegmentStats
	Daily       SegmentStats
	TotalBudget decimal.Decimal
	Window      DailyWindow
	Categories  []CategoryShare
}

// Segment returns the stats for s.
func (p Projection) Segment(s Segment) SegmentStats {
	switch s {
	case SegmentBills:
		return p.Bills
	case SegmentSpecials:
		return p.Specials
	case SegmentDaily:
		return p.Daily
	}
	panic("model: unknown segment " + string(s))
}

// DaySpend is the daily-segment activity on one local calendar day.
type DaySpend struct {
	Date         time.Time // local midnight
	Transactions int
	Spent        decimal.Decimal
	Income       decimal.Decimal
}

// Net returns spend minus income.
func (d DaySpend) Net() decimal.Decimal {
	return d.Spent.Sub(d.Income)
}
