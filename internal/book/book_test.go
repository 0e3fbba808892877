package book

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
	"github.com/theirongolddev/budgetsplit/internal/store"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func openMemory(t *testing.T, m *store.Memory) *Book {
	t.Helper()
	b, err := Open(m, fixedClock, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return b
}

func TestOpenEmpty(t *testing.T) {
	b := openMemory(t, &store.Memory{})
	l := b.Ledger()
	if len(l.Expenses) != 0 || !l.Bills.IsZero() {
		t.Fatalf("empty book ledger = %+v", l)
	}
	if b.Dirty() {
		t.Fatal("fresh book is dirty")
	}
}

func TestOpenRejectsCorruptBlob(t *testing.T) {
	m := &store.Memory{Data: []byte(`{"bills":"x"}`), Saved: true}
	if _, err := Open(m, fixedClock, nil); !errors.Is(err, ledger.ErrMalformedImport) {
		t.Fatalf("Open err = %v, want ErrMalformedImport", err)
	}
}

func TestAddPersistsAndReloads(t *testing.T) {
	m := &store.Memory{}
	b := openMemory(t, m)

	tx, err := b.Add(ledger.Draft{Amount: "12", Label: "lunch", Segment: model.SegmentDaily, Category: "out food"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if tx.ID != testNow.UnixMilli() {
		t.Fatalf("id = %d, want %d", tx.ID, testNow.UnixMilli())
	}
	if m.Saves != 1 {
		t.Fatalf("saves = %d, want 1", m.Saves)
	}

	second, err := b.Add(ledger.Draft{Amount: "3", Label: "tea", Segment: model.SegmentDaily})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second.ID != tx.ID+1 {
		t.Fatalf("second id = %d, want %d", second.ID, tx.ID+1)
	}

	again := openMemory(t, m)
	if !again.Ledger().Equal(b.Ledger()) {
		t.Fatalf("reloaded ledger = %+v, want %+v", again.Ledger(), b.Ledger())
	}
}

func TestAddInvalidLeavesLedger(t *testing.T) {
	m := &store.Memory{}
	b := openMemory(t, m)
	if _, err := b.Add(ledger.Draft{Amount: "-4", Label: "x", Segment: model.SegmentBills}); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("Add err = %v, want ErrInvalidAmount", err)
	}
	if m.Saves != 0 || len(b.Ledger().Expenses) != 0 {
		t.Fatal("invalid add changed the book")
	}
}

func TestRemove(t *testing.T) {
	b := openMemory(t, &store.Memory{})
	tx, err := b.Add(ledger.Draft{Amount: "5", Label: "x", Segment: model.SegmentSpecials})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := b.Remove(tx.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got.ID != tx.ID || len(b.Ledger().Expenses) != 0 {
		t.Fatalf("Remove returned %+v, left %d", got, len(b.Ledger().Expenses))
	}
	if _, err := b.Remove(tx.ID); !errors.Is(err, ledger.ErrUnknownTransaction) {
		t.Fatalf("Remove twice err = %v, want ErrUnknownTransaction", err)
	}
}

func TestSaveFailureKeepsChangeAndDirty(t *testing.T) {
	m := &store.Memory{SaveErr: errors.New("quota exceeded")}
	b := openMemory(t, m)

	err := b.SetKnob(model.SegmentBills, decimal.NewFromInt(500))
	if !errors.Is(err, ErrNotSaved) {
		t.Fatalf("SetKnob err = %v, want ErrNotSaved", err)
	}
	if !b.Ledger().Bills.Equal(decimal.NewFromInt(500)) {
		t.Fatal("failed save discarded the in-memory change")
	}
	if !b.Dirty() {
		t.Fatal("book should be dirty after a failed save")
	}

	if err := b.Flush(); !errors.Is(err, ErrNotSaved) {
		t.Fatalf("Flush err = %v, want ErrNotSaved", err)
	}

	m.SaveErr = nil
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if b.Dirty() || m.Saves != 1 {
		t.Fatalf("after Flush dirty=%v saves=%d", b.Dirty(), m.Saves)
	}
	if err := b.Flush(); err != nil || m.Saves != 1 {
		t.Fatalf("clean Flush wrote again: err=%v saves=%d", err, m.Saves)
	}
}

func TestImport(t *testing.T) {
	m := &store.Memory{}
	b := openMemory(t, m)
	if _, err := b.Add(ledger.Draft{Amount: "9", Label: "local", Segment: model.SegmentBills}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	saves := m.Saves

	incoming := model.Ledger{
		Daily: decimal.NewFromInt(20),
		Expenses: []model.Transaction{{
			ID: 7, Amount: decimal.NewFromInt(4), Segment: model.SegmentDaily,
			Category: model.CategoryOthers, Label: "remote", Type: model.TypeExpense,
			Date: testNow.Add(-time.Hour),
		}},
	}

	got, err := b.Import(incoming, ledger.ChoiceSkip)
	if err != nil || len(got.Expenses) != 1 || m.Saves != saves {
		t.Fatalf("skip: len=%d saves=%d err=%v", len(got.Expenses), m.Saves, err)
	}

	got, err = b.Import(incoming, ledger.ChoiceMerge)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(got.Expenses) != 2 || !got.Daily.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("merge = %+v", got)
	}

	got, err = b.Import(incoming, ledger.ChoiceReplace)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(got.Expenses) != 1 || got.Expenses[0].Label != "remote" {
		t.Fatalf("replace = %+v", got)
	}
}

func TestProject(t *testing.T) {
	b := openMemory(t, &store.Memory{})
	if err := b.SetKnob(model.SegmentDaily, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("SetKnob: %v", err)
	}
	p := b.Project(pipeline.FormulaBlend)
	if !p.Daily.Nominal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("daily nominal = %s, want 300", p.Daily.Nominal)
	}
	if !p.At.Equal(testNow) {
		t.Fatalf("projection at %v, want %v", p.At, testNow)
	}
}
