package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

// ErrMalformedImport is returned when data does not have the ledger shape.
var ErrMalformedImport = errors.New("malformed ledger data")

type wireLedger struct {
	Bills    json.Number       `json:"bills"`
	Specials json.Number       `json:"specials"`
	Daily    json.Number       `json:"daily"`
	Expenses []wireTransaction `json:"expenses"`
}

type wireTransaction struct {
	ID       int64       `json:"id"`
	Amount   json.Number `json:"amount"`
	Segment  string      `json:"segment"`
	Category string      `json:"category"`
	Label    string      `json:"label"`
	Type     string      `json:"type,omitempty"`
	Date     int64       `json:"date"`
}

// Marshal serializes a ledger in the current schema. Amounts are written as
// JSON numbers. indent selects the pretty-printed form used for manual export.
func Marshal(l model.Ledger, indent bool) ([]byte, error) {
	w := wireLedger{
		Bills:    json.Number(l.Bills.String()),
		Specials: json.Number(l.Specials.String()),
		Daily:    json.Number(l.Daily.String()),
		Expenses: make([]wireTransaction, 0, len(l.Expenses)),
	}
	for _, t := range l.Expenses {
		w.Expenses = append(w.Expenses, wireTransaction{
			ID:       t.ID,
			Amount:   json.Number(t.Amount.String()),
			Segment:  string(t.Segment),
			Category: string(t.Category),
			Label:    t.Label,
			Type:     string(t.Type),
			Date:     t.Date.UnixMilli(),
		})
	}
	if indent {
		return json.MarshalIndent(w, "", "  ")
	}
	return json.Marshal(w)
}

// Parse decodes ledger JSON after checking its shape: bills, specials and
// daily must be non-negative numbers and expenses must be an array of
// well-formed transactions. Later entries repeating an id are dropped. Any
// failure wraps ErrMalformedImport.
func Parse(data []byte) (StoredLedger, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return StoredLedger{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	var s StoredLedger
	knobs := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"bills", &s.Bills},
		{"specials", &s.Specials},
		{"daily", &s.Daily},
	}
	for _, k := range knobs {
		d, err := parseNumber(top[k.key])
		if err != nil {
			return StoredLedger{}, fmt.Errorf("%w: %s: %v", ErrMalformedImport, k.key, err)
		}
		if d.IsNegative() {
			return StoredLedger{}, fmt.Errorf("%w: %s: %w", ErrMalformedImport, k.key, ErrInvalidKnob)
		}
		*k.dst = d
	}

	raw, ok := top["expenses"]
	if !ok || !isArray(raw) {
		return StoredLedger{}, fmt.Errorf("%w: expenses is not a list", ErrMalformedImport)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return StoredLedger{}, fmt.Errorf("%w: expenses: %v", ErrMalformedImport, err)
	}

	seen := make(map[int64]struct{}, len(items))
	s.Expenses = make([]StoredTransaction, 0, len(items))
	for i, item := range items {
		st, id, err := parseTransaction(item)
		if err != nil {
			return StoredLedger{}, fmt.Errorf("%w: expenses[%d]: %v", ErrMalformedImport, i, err)
		}
		// First copy of an id wins, as in Merge.
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.Expenses = append(s.Expenses, st)
	}
	return s, nil
}

// Load parses ledger JSON and upgrades it to the current schema.
func Load(data []byte) (model.Ledger, error) {
	s, err := Parse(data)
	if err != nil {
		return model.Ledger{}, err
	}
	return Migrate(s.Upgrade()), nil
}

func parseTransaction(raw json.RawMessage) (StoredTransaction, int64, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, 0, err
	}

	idNum, err := parseNumber(fields["id"])
	if err != nil {
		return nil, 0, fmt.Errorf("id: %v", err)
	}
	if !idNum.IsInteger() {
		return nil, 0, fmt.Errorf("id %s is not an integer", idNum)
	}
	amount, err := parseNumber(fields["amount"])
	if err != nil {
		return nil, 0, fmt.Errorf("amount: %v", err)
	}
	if !amount.IsPositive() {
		return nil, 0, fmt.Errorf("amount %s must be positive", amount)
	}
	dateNum, err := parseNumber(fields["date"])
	if err != nil {
		return nil, 0, fmt.Errorf("date: %v", err)
	}

	var segment, category, label string
	if err := optionalString(fields, "segment", &segment); err != nil {
		return nil, 0, err
	}
	if err := optionalString(fields, "category", &category); err != nil {
		return nil, 0, err
	}
	if err := optionalString(fields, "label", &label); err != nil {
		return nil, 0, err
	}
	seg := model.Segment(segment)
	if !seg.Valid() {
		return nil, 0, fmt.Errorf("unknown segment %q", segment)
	}

	id := idNum.IntPart()
	date := time.UnixMilli(dateNum.IntPart())

	typeRaw, hasType := fields["type"]
	if !hasType || bytes.Equal(bytes.TrimSpace(typeRaw), []byte("null")) {
		return LegacyTransaction{
			ID:       id,
			Amount:   amount,
			Segment:  seg,
			Category: model.Category(category),
			Label:    label,
			Date:     date,
		}, id, nil
	}

	var typ string
	if err := json.Unmarshal(typeRaw, &typ); err != nil {
		return nil, 0, fmt.Errorf("type: %v", err)
	}
	tt := model.TxType(typ)
	if !tt.Valid() {
		return nil, 0, fmt.Errorf("unknown type %q", typ)
	}
	return CurrentTransaction{model.Transaction{
		ID:       id,
		Amount:   amount,
		Segment:  seg,
		Category: model.Category(category),
		Label:    label,
		Type:     tt,
		Date:     date,
	}}, id, nil
}

// parseNumber accepts only a JSON number literal.
func parseNumber(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero, errors.New("missing")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return decimal.Zero, err
	}
	n, ok := v.(json.Number)
	if !ok {
		return decimal.Zero, fmt.Errorf("not a number: %s", raw)
	}
	return decimal.NewFromString(n.String())
}

func optionalString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
