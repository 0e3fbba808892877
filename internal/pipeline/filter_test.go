package pipeline

import (
	"testing"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

func TestExportView(t *testing.T) {
	l := model.Ledger{
		Bills: dec("100"),
		Daily: dec("5"),
		Expenses: []model.Transaction{
			tx(1, model.SegmentDaily, "3", model.TypeExpense, daysAgo(1)),
			tx(2, model.SegmentBills, "80", model.TypeExpense, daysAgo(200)),
			tx(3, model.SegmentDaily, "9", model.TypeExpense, daysAgo(31)),
			tx(4, model.SegmentSpecials, "300", model.TypeExpense, daysAgo(90)),
		},
	}

	got := ExportView(l, testNow)

	if !got.Bills.Equal(l.Bills) || !got.Daily.Equal(l.Daily) {
		t.Fatalf("knobs not preserved: %+v", got)
	}
	ids := make([]int64, 0, len(got.Expenses))
	for _, x := range got.Expenses {
		ids = append(ids, x.ID)
	}
	want := []int64{1, 2, 4}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	if len(l.Expenses) != 4 {
		t.Fatal("ExportView modified its input")
	}
}

func TestFilterByTime(t *testing.T) {
	txs := []model.Transaction{
		tx(1, model.SegmentDaily, "1", model.TypeExpense, daysAgo(1)),
		tx(2, model.SegmentDaily, "1", model.TypeExpense, daysAgo(5)),
		tx(3, model.SegmentDaily, "1", model.TypeExpense, daysAgo(10)),
	}

	got := FilterByTime(txs, daysAgo(7), testNow)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	if got := FilterByTime(txs, daysAgo(5), daysAgo(1)); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("half-open range = %+v, want only id 2", got)
	}
}

func TestInWindowBoundary(t *testing.T) {
	edge := tx(1, model.SegmentDaily, "1", model.TypeExpense, testNow.Add(-Window))
	if !InWindow(edge, testNow) {
		t.Fatal("transaction exactly 30 days old should be in the window")
	}
	edge.Date = edge.Date.Add(-1)
	if InWindow(edge, testNow) {
		t.Fatal("transaction older than 30 days should be outside the window")
	}
}
