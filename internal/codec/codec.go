// Package codec converts ledgers to and from the strings users carry between
// devices: a compact token for URL fragments and a pretty JSON paste form.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
)

// ErrDecodeFailure is returned when input cannot be turned back into JSON text.
var ErrDecodeFailure = errors.New("cannot decode sync data")

// Envelope identifies which transport form a string uses.
type Envelope int

const (
	// EnvelopeToken is the filtered ledger, percent-escaped then base64,
	// usually carried after '#' in a URL.
	EnvelopeToken Envelope = iota
	// EnvelopeJSON is the full ledger as plain JSON text.
	EnvelopeJSON
)

func (e Envelope) String() string {
	if e == EnvelopeJSON {
		return "json"
	}
	return "token"
}

// Filter returns the ledger view that Encode serializes, migrated to the
// current schema.
func Filter(l model.Ledger, now time.Time) model.Ledger {
	return ledger.Migrate(pipeline.ExportView(l, now))
}

// Encode serializes the filtered view of l into a URL-fragment-safe token.
func Encode(l model.Ledger, now time.Time) (string, error) {
	data, err := ledger.Marshal(Filter(l, now), false)
	if err != nil {
		return "", fmt.Errorf("encoding ledger: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(escapeComponent(string(data)))), nil
}

// Decode reverses Encode. A token that is not valid base64, not valid
// percent-escaping, or not JSON wraps ErrDecodeFailure; JSON that fails the
// ledger shape check wraps ledger.ErrMalformedImport.
func Decode(token string) (model.Ledger, error) {
	text, err := tokenText(strings.TrimSpace(token))
	if err != nil {
		return model.Ledger{}, err
	}
	return decodeJSON([]byte(text))
}

// EncodeJSON renders the full, unfiltered ledger as indented JSON.
func EncodeJSON(l model.Ledger) (string, error) {
	data, err := ledger.Marshal(l, true)
	if err != nil {
		return "", fmt.Errorf("encoding ledger: %w", err)
	}
	return string(data), nil
}

// DecodeJSON parses pasted ledger JSON.
func DecodeJSON(text string) (model.Ledger, error) {
	return decodeJSON([]byte(strings.TrimSpace(text)))
}

// Detect tells the envelope of input apart by shape: JSON text starts with
// '{' once whitespace is trimmed, anything else is a token.
func Detect(input string) Envelope {
	if strings.HasPrefix(strings.TrimSpace(input), "{") {
		return EnvelopeJSON
	}
	return EnvelopeToken
}

// DecodeAny accepts a URL with a fragment, a bare token, or pasted JSON.
func DecodeAny(input string) (model.Ledger, Envelope, error) {
	input = strings.TrimSpace(input)
	if Detect(input) == EnvelopeJSON {
		l, err := DecodeJSON(input)
		return l, EnvelopeJSON, err
	}
	token := input
	if i := strings.LastIndexByte(input, '#'); i >= 0 {
		token = input[i+1:]
	}
	if token == "" {
		return model.Ledger{}, EnvelopeToken, fmt.Errorf("%w: empty token", ErrDecodeFailure)
	}
	l, err := Decode(token)
	return l, EnvelopeToken, err
}

// Link appends the token to base as a URL fragment.
func Link(base, token string) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + "#" + token
}

func tokenText(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrDecodeFailure)
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	text, err := url.PathUnescape(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return text, nil
}

func decodeJSON(data []byte) (model.Ledger, error) {
	if !json.Valid(data) {
		return model.Ledger{}, fmt.Errorf("%w: not JSON", ErrDecodeFailure)
	}
	return ledger.Load(data)
}
