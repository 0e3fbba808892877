package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func daysAgo(n float64) time.Time {
	return testNow.Add(-time.Duration(n * float64(24*time.Hour)))
}

func tx(id int64, seg model.Segment, amount string, typ model.TxType, date time.Time) model.Transaction {
	t := model.Transaction{
		ID:      id,
		Amount:  dec(amount),
		Segment: seg,
		Label:   "t",
		Type:    typ,
		Date:    date,
	}
	if seg == model.SegmentDaily {
		t.Category = model.CategoryOthers
	}
	return t
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func TestProject_EmptyDailyUsesFullBudget(t *testing.T) {
	l := model.Ledger{Daily: dec("10")}

	p := Project(l, testNow, FormulaBlend)

	assertDec(t, "daily display", p.Daily.Display, "300")
	assertDec(t, "total budget", p.TotalBudget, "300")
	assertDec(t, "daily percent", p.Daily.Percent, "100")
	assertDec(t, "bills percent", p.Bills.Percent, "0")
	if p.Window.Transactions != 0 {
		t.Fatalf("window transactions = %d, want 0", p.Window.Transactions)
	}
}

func TestSegmentTotal_BillsSignedSum(t *testing.T) {
	l := model.Ledger{Expenses: []model.Transaction{
		tx(1, model.SegmentBills, "50", model.TypeExpense, daysAgo(90)),
		tx(2, model.SegmentBills, "20", model.TypeIncome, daysAgo(400)),
	}}

	assertDec(t, "bills", SegmentTotal(l, model.SegmentBills, testNow), "30")
}

func TestSegmentTotal_SpecialsSpreadOverYear(t *testing.T) {
	l := model.Ledger{Expenses: []model.Transaction{
		tx(1, model.SegmentSpecials, "1200", model.TypeExpense, daysAgo(200)),
	}}

	assertDec(t, "specials", SegmentTotal(l, model.SegmentSpecials, testNow), "100")
}

func TestSegmentTotal_DailyBlend(t *testing.T) {
	l := model.Ledger{
		Daily:    dec("10"),
		Expenses: []model.Transaction{tx(1, model.SegmentDaily, "15", model.TypeExpense, daysAgo(10))},
	}

	w := DailyWindow(l, testNow)
	assertDec(t, "days of data", w.DaysOfData, "10")
	assertDec(t, "actual", w.Actual, "15")
	assertDec(t, "daily", SegmentTotal(l, model.SegmentDaily, testNow), "215")
}

func TestSegmentTotal_DailyRatio(t *testing.T) {
	l := model.Ledger{
		Daily:    dec("10"),
		Expenses: []model.Transaction{tx(1, model.SegmentDaily, "15", model.TypeExpense, daysAgo(10))},
	}

	// 15 / 10 * 30
	assertDec(t, "daily", SegmentTotalWith(l, model.SegmentDaily, testNow, FormulaRatio), "45")
}

func TestSegmentTotal_DailyMinimumOneDay(t *testing.T) {
	l := model.Ledger{
		Daily:    dec("10"),
		Expenses: []model.Transaction{tx(1, model.SegmentDaily, "5", model.TypeExpense, testNow.Add(-time.Hour))},
	}

	assertDec(t, "days of data", DailyWindow(l, testNow).DaysOfData, "1")
	// 10 * 29 + 5
	assertDec(t, "daily", SegmentTotal(l, model.SegmentDaily, testNow), "295")
}

func TestSegmentTotal_DailyContinuousAtWindowEdge(t *testing.T) {
	// The earliest transaction sits exactly on the window boundary, so the
	// full-window branch applies and must equal the blended value there.
	l := model.Ledger{
		Daily: dec("10"),
		Expenses: []model.Transaction{
			tx(1, model.SegmentDaily, "40", model.TypeExpense, daysAgo(30)),
			tx(2, model.SegmentDaily, "60", model.TypeExpense, daysAgo(2)),
		},
	}

	got := SegmentTotal(l, model.SegmentDaily, testNow)
	assertDec(t, "daily at boundary", got, "100")

	// Just inside the boundary the blend adds only a sliver of budget.
	l.Expenses[0].Date = daysAgo(29.999)
	inside := SegmentTotal(l, model.SegmentDaily, testNow)
	if inside.Sub(got).Abs().GreaterThan(dec("0.1")) {
		t.Fatalf("daily jumped at boundary: inside=%s edge=%s", inside, got)
	}
}

func TestSegmentTotal_DailyIgnoresOldTransactions(t *testing.T) {
	l := model.Ledger{
		Daily: dec("10"),
		Expenses: []model.Transaction{
			tx(1, model.SegmentDaily, "500", model.TypeExpense, daysAgo(31)),
		},
	}

	assertDec(t, "daily", SegmentTotal(l, model.SegmentDaily, testNow), "300")
}

func TestProject_OverBudgetAndDisplay(t *testing.T) {
	l := model.Ledger{
		Bills:    dec("100"),
		Specials: dec("50"),
		Daily:    dec("0"),
		Expenses: []model.Transaction{
			tx(1, model.SegmentBills, "150", model.TypeExpense, daysAgo(3)),
			tx(2, model.SegmentSpecials, "120", model.TypeExpense, daysAgo(3)),
		},
	}

	p := Project(l, testNow, FormulaBlend)

	if !p.Bills.OverBudget {
		t.Fatal("bills should be over budget")
	}
	assertDec(t, "bills display", p.Bills.Display, "150")
	if p.Specials.OverBudget {
		t.Fatal("specials 10/50 should not be over budget")
	}
	assertDec(t, "specials display", p.Specials.Display, "50")
	assertDec(t, "total", p.TotalBudget, "200")
	assertDec(t, "bills percent", p.Bills.Percent, "75")
}

func TestProject_EvenSplitWhenNothingBudgeted(t *testing.T) {
	l := model.Ledger{Expenses: []model.Transaction{
		tx(1, model.SegmentBills, "40", model.TypeIncome, daysAgo(1)),
	}}

	p := Project(l, testNow, FormulaBlend)

	assertDec(t, "bills percent", p.Bills.Percent, "33")
	assertDec(t, "specials percent", p.Specials.Percent, "33")
	assertDec(t, "daily percent", p.Daily.Percent, "34")
}

func TestProject_PercentagesSumToHundred(t *testing.T) {
	l := model.Ledger{
		Bills:    dec("700"),
		Specials: dec("133.33"),
		Daily:    dec("17"),
		Expenses: []model.Transaction{
			tx(1, model.SegmentDaily, "23.5", model.TypeExpense, daysAgo(4)),
		},
	}

	p := Project(l, testNow, FormulaBlend)
	sum := p.Bills.Percent.Add(p.Specials.Percent).Add(p.Daily.Percent)
	if sum.Sub(dec("100")).Abs().GreaterThan(dec("0.000001")) {
		t.Fatalf("percent sum = %s, want 100", sum)
	}
}

func TestBreakdown(t *testing.T) {
	food := tx(1, model.SegmentDaily, "30", model.TypeExpense, daysAgo(1))
	food.Category = model.CategoryOutFood
	shop := tx(2, model.SegmentDaily, "10", model.TypeExpense, daysAgo(2))
	shop.Category = model.CategoryShopping
	refund := tx(3, model.SegmentDaily, "25", model.TypeIncome, daysAgo(2))
	refund.Category = model.CategoryEntertainment
	stray := tx(4, model.SegmentDaily, "99", model.TypeExpense, daysAgo(2))
	stray.Category = "Travel"
	old := tx(5, model.SegmentDaily, "1000", model.TypeExpense, daysAgo(45))
	old.Category = model.CategoryShopping

	l := model.Ledger{Expenses: []model.Transaction{food, shop, refund, stray, old}}
	shares := Breakdown(l, testNow)

	if len(shares) != 2 {
		t.Fatalf("len(shares) = %d, want 2: %+v", len(shares), shares)
	}
	if shares[0].Category != model.CategoryOutFood || shares[1].Category != model.CategoryShopping {
		t.Fatalf("order = %s, %s; want Out Food, Shopping", shares[0].Category, shares[1].Category)
	}
	assertDec(t, "out food percent", shares[0].Percent, "75")
	assertDec(t, "shopping percent", shares[1].Percent, "25")
	assertDec(t, "shopping amount", shares[1].Amount, "10")
}

func TestBreakdown_NeverExceedsHundred(t *testing.T) {
	var txs []model.Transaction
	for i, c := range []model.Category{model.CategoryInFood, model.CategoryOutFood, model.CategoryOthers} {
		x := tx(int64(i+1), model.SegmentDaily, "1", model.TypeExpense, daysAgo(1))
		x.Category = c
		txs = append(txs, x)
	}

	shares := Breakdown(model.Ledger{Expenses: txs}, testNow)
	sum := decimal.Zero
	for _, s := range shares {
		if !s.Percent.IsPositive() {
			t.Fatalf("%s percent = %s, want > 0", s.Category, s.Percent)
		}
		sum = sum.Add(s.Percent)
	}
	if sum.GreaterThan(dec("100")) {
		t.Fatalf("percent sum = %s, want <= 100", sum)
	}
}

func TestBreakdown_EmptyWhenNothingPositive(t *testing.T) {
	refund := tx(1, model.SegmentDaily, "5", model.TypeIncome, daysAgo(1))
	if got := Breakdown(model.Ledger{Expenses: []model.Transaction{refund}}, testNow); len(got) != 0 {
		t.Fatalf("Breakdown = %+v, want empty", got)
	}
}

func TestParseFormula(t *testing.T) {
	tests := []struct {
		in      string
		want    Formula
		wantErr bool
	}{
		{"", FormulaBlend, false},
		{"blend", FormulaBlend, false},
		{" Ratio ", FormulaRatio, false},
		{"linear", FormulaBlend, true},
	}
	for _, tt := range tests {
		got, err := ParseFormula(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormula(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseFormula(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
