package codec

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sample() model.Ledger {
	day := 24 * time.Hour
	at := func(d time.Duration) time.Time { return time.UnixMilli(now.Add(-d).UnixMilli()) }
	return model.Ledger{
		Bills:    decimal.RequireFromString("1000"),
		Specials: decimal.RequireFromString("200"),
		Daily:    decimal.RequireFromString("12.5"),
		Expenses: []model.Transaction{
			{ID: 3, Amount: decimal.RequireFromString("8.25"), Segment: model.SegmentDaily, Category: model.CategoryInFood,
				Label: "café & bagels 100%", Type: model.TypeExpense, Date: at(2 * day)},
			{ID: 2, Amount: decimal.RequireFromString("950"), Segment: model.SegmentBills,
				Label: "rent", Type: model.TypeExpense, Date: at(20 * day)},
			{ID: 1, Amount: decimal.RequireFromString("30"), Segment: model.SegmentDaily, Category: model.CategoryShopping,
				Label: "old shoes", Type: model.TypeExpense, Date: at(45 * day)},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	l := sample()

	token, err := Encode(l, now)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := Filter(l, now)
	if !got.Equal(want) {
		t.Fatalf("Decode(Encode(L)) = %+v, want %+v", got, want)
	}
	if len(got.Expenses) != 2 {
		t.Fatalf("len = %d, want 2 (old daily dropped)", len(got.Expenses))
	}
}

func TestEncodeDecodeUntypedTransaction(t *testing.T) {
	l := model.Ledger{
		Bills: decimal.RequireFromString("500"),
		Expenses: []model.Transaction{
			{ID: 7, Amount: decimal.RequireFromString("40"), Segment: model.SegmentBills,
				Label: "water", Date: time.UnixMilli(now.Add(-48 * time.Hour).UnixMilli())},
		},
	}

	token, err := Encode(l, now)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := Filter(l, now); !got.Equal(want) {
		t.Fatalf("Decode(Encode(L)) = %+v, want %+v", got, want)
	}
	if got.Expenses[0].Type != model.TypeExpense {
		t.Fatalf("Type = %q, want %q", got.Expenses[0].Type, model.TypeExpense)
	}
	if l.Expenses[0].Type != "" {
		t.Fatal("Filter mutated its input")
	}
}

func TestTokenIsFragmentSafe(t *testing.T) {
	token, err := Encode(sample(), now)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.ContainsAny(token, " #&?%\n") {
		t.Fatalf("token contains unsafe characters: %q", token)
	}
}

func TestDecodeFailure(t *testing.T) {
	token, err := Encode(sample(), now)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"truncated", token[:len(token)-8]},
		{"not json", base64.StdEncoding.EncodeToString([]byte("hello%20world"))},
		{"bad escape", base64.StdEncoding.EncodeToString([]byte("%ZZ"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Decode(tt.token)
			if !errors.Is(err, ErrDecodeFailure) {
				t.Fatalf("Decode err = %v, want ErrDecodeFailure", err)
			}
			if len(l.Expenses) != 0 {
				t.Fatal("failed decode returned transactions")
			}
		})
	}
}

func TestDecodeMalformedShape(t *testing.T) {
	text := `{"bills":"lots","specials":0,"daily":0,"expenses":[]}`
	token := base64.StdEncoding.EncodeToString([]byte(url.PathEscape(text)))

	_, err := Decode(token)
	if !errors.Is(err, ledger.ErrMalformedImport) {
		t.Fatalf("Decode err = %v, want ErrMalformedImport", err)
	}
	if errors.Is(err, ErrDecodeFailure) {
		t.Fatal("shape failure reported as decode failure")
	}
}

func TestDecodeNegativeKnob(t *testing.T) {
	text := `{"bills":400,"specials":0,"daily":-10,"expenses":[]}`
	token := base64.StdEncoding.EncodeToString([]byte(url.PathEscape(text)))

	_, err := Decode(token)
	if !errors.Is(err, ledger.ErrMalformedImport) {
		t.Fatalf("Decode err = %v, want ErrMalformedImport", err)
	}
}

func TestEncodeJSONKeepsEverything(t *testing.T) {
	l := sample()
	text, err := EncodeJSON(l)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	if !strings.Contains(text, "\n  ") {
		t.Fatalf("EncodeJSON output is not indented: %s", text)
	}
	got, err := DecodeJSON("\n" + text + "\n")
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if !got.Equal(l) {
		t.Fatalf("DecodeJSON(EncodeJSON(L)) = %+v, want %+v", got, l)
	}
}

func TestDecodeAny(t *testing.T) {
	l := sample()
	token, err := Encode(l, now)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text, err := EncodeJSON(l)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		wantEnv Envelope
		wantN   int
	}{
		{"bare token", token, EnvelopeToken, 2},
		{"link", Link("https://example.com/budget/", token), EnvelopeToken, 2},
		{"link with old fragment", Link("https://example.com/#stale", token), EnvelopeToken, 2},
		{"json", "  " + text, EnvelopeJSON, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, env, err := DecodeAny(tt.input)
			if err != nil {
				t.Fatalf("DecodeAny: %v", err)
			}
			if env != tt.wantEnv {
				t.Fatalf("envelope = %v, want %v", env, tt.wantEnv)
			}
			if len(got.Expenses) != tt.wantN {
				t.Fatalf("len = %d, want %d", len(got.Expenses), tt.wantN)
			}
		})
	}

	if _, _, err := DecodeAny("https://example.com/#"); !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("DecodeAny(empty fragment) err = %v, want ErrDecodeFailure", err)
	}
}

func TestLink(t *testing.T) {
	if got := Link("https://example.com/app#old", "abc"); got != "https://example.com/app#abc" {
		t.Fatalf("Link = %q", got)
	}
}

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-_.!~*'()", "abc-_.!~*'()"},
		{`{"a":1}`, "%7B%22a%22%3A1%7D"},
		{"a b+c", "a%20b%2Bc"},
		{"é", "%C3%A9"},
	}
	for _, tt := range tests {
		if got := escapeComponent(tt.in); got != tt.want {
			t.Fatalf("escapeComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
		back, err := url.PathUnescape(escapeComponent(tt.in))
		if err != nil || back != tt.in {
			t.Fatalf("PathUnescape(escapeComponent(%q)) = %q, %v", tt.in, back, err)
		}
	}
}
