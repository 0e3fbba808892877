package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

// startOfDay returns local midnight of t's calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// AggregateDays buckets daily-segment transactions by local calendar day
// over [since, until], most recent first. Every day in the range is
// present, so quiet days show up as zeros.
func AggregateDays(txs []model.Transaction, since, until time.Time) []model.DaySpend {
	first := startOfDay(since)
	last := startOfDay(until)
	if last.Before(first) {
		return nil
	}

	dayMap := make(map[time.Time]*model.DaySpend)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dayMap[day] = &model.DaySpend{Date: day}
	}

	for _, t := range FilterBySegment(txs, model.SegmentDaily) {
		if t.Date.Before(since) || t.Date.After(until) {
			continue
		}
		ds, ok := dayMap[startOfDay(t.Date)]
		if !ok {
			continue
		}
		ds.Transactions++
		if t.Type == model.TypeIncome {
			ds.Income = ds.Income.Add(t.Amount)
		} else {
			ds.Spent = ds.Spent.Add(t.Amount)
		}
	}

	days := make([]model.DaySpend, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// DaysOverAllowance counts days whose net spend exceeds allowance.
func DaysOverAllowance(days []model.DaySpend, allowance decimal.Decimal) int {
	n := 0
	for _, d := range days {
		if d.Net().GreaterThan(allowance) {
			n++
		}
	}
	return n
}
