// Package book owns the single in-memory ledger, applies mutations to it
// and persists it after each one.
package book

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
	"github.com/theirongolddev/budgetsplit/internal/store"
)

// ErrNotSaved is returned when a mutation was applied in memory but the
// provider rejected the write. The book stays dirty until a save succeeds.
var ErrNotSaved = errors.New("ledger changed but could not be saved")

// Clock returns the current time.
type Clock func() time.Time

// Book serializes every mutation together with its persistence write.
type Book struct {
	mu     sync.Mutex
	ledger model.Ledger
	dirty  bool

	provider store.Provider
	clock    Clock
	logger   *log.Logger
}

// Open loads the ledger from p, starting empty when nothing is stored yet.
func Open(p store.Provider, clock Clock, logger *log.Logger) (*Book, error) {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	b := &Book{provider: p, clock: clock, logger: logger}

	data, ok, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	if !ok {
		logger.Debug("no stored ledger, starting empty")
		return b, nil
	}

	l, err := ledger.Load(data)
	if err != nil {
		return nil, fmt.Errorf("stored ledger: %w", err)
	}
	b.ledger = l
	logger.Debug("ledger loaded", "transactions", len(l.Expenses))
	return b, nil
}

// Now returns the book's clock reading.
func (b *Book) Now() time.Time {
	return b.clock()
}

// Ledger returns a copy of the current ledger.
func (b *Book) Ledger() model.Ledger {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Clone()
}

// Project runs the projection engine on the current ledger.
func (b *Book) Project(f pipeline.Formula) model.Projection {
	return pipeline.Project(b.Ledger(), b.clock(), f)
}

// Dirty reports whether the in-memory ledger has unsaved changes.
func (b *Book) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// Add validates d, assigns an id and records the transaction.
func (b *Book) Add(d ledger.Draft) (model.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock()
	t, err := d.Build(ledger.NextID(b.ledger, now), now)
	if err != nil {
		return model.Transaction{}, err
	}
	next, err := ledger.Add(b.ledger, t)
	if err != nil {
		return model.Transaction{}, err
	}
	b.logger.Info("transaction added", "id", t.ID, "segment", t.Segment, "amount", t.Amount.String())
	return t, b.commit(next)
}

// Remove deletes the transaction with id and returns it.
func (b *Book) Remove(id int64) (model.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.ledger.Find(id)
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: %d", ledger.ErrUnknownTransaction, id)
	}
	next, err := ledger.Remove(b.ledger, id)
	if err != nil {
		return model.Transaction{}, err
	}
	b.logger.Info("transaction removed", "id", id)
	return t, b.commit(next)
}

// SetKnob changes the budget for one segment.
func (b *Book) SetKnob(s model.Segment, v decimal.Decimal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := ledger.SetKnob(b.ledger, s, v)
	if err != nil {
		return err
	}
	b.logger.Info("budget changed", "segment", s, "value", v.String())
	return b.commit(next)
}

// Import applies an already decoded ledger according to choice and returns
// the resulting ledger. Skip leaves everything untouched.
func (b *Book) Import(imported model.Ledger, choice ledger.ImportChoice) (model.Ledger, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, changed := ledger.Apply(b.ledger, imported, choice)
	if !changed {
		b.logger.Info("import skipped")
		return b.ledger.Clone(), nil
	}
	b.logger.Info("import applied",
		"choice", choice.String(),
		"before", len(b.ledger.Expenses),
		"after", len(next.Expenses),
	)
	return next.Clone(), b.commit(next)
}

// Flush retries a pending save.
func (b *Book) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dirty {
		return nil
	}
	return b.save()
}

// commit installs next as the current ledger and persists it. The caller
// holds b.mu.
func (b *Book) commit(next model.Ledger) error {
	b.ledger = next
	b.dirty = true
	return b.save()
}

func (b *Book) save() error {
	data, err := ledger.Marshal(b.ledger, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotSaved, err)
	}
	if err := b.provider.Save(data); err != nil {
		b.logger.Error("save failed, ledger kept in memory", "err", err)
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	b.dirty = false
	return nil
}
