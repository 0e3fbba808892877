package model

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestRatio bounds how different an input may be from a known name
// before no suggestion is offered.
const maxSuggestRatio = 0.4

// ParseSegment matches s case-insensitively against the known segments.
func ParseSegment(s string) (Segment, error) {
	names := make([]string, len(Segments))
	for i, seg := range Segments {
		names[i] = string(seg)
	}
	name, err := matchName(s, names, "segment")
	if err != nil {
		return "", err
	}
	return Segment(name), nil
}

// ParseDailyCategory matches s case-insensitively against DailyCategories.
// Spaces, dashes and underscores are interchangeable ("out-food" == "Out Food").
func ParseDailyCategory(s string) (Category, error) {
	names := make([]string, len(DailyCategories))
	for i, c := range DailyCategories {
		names[i] = string(c)
	}
	name, err := matchName(s, names, "daily category")
	if err != nil {
		return "", err
	}
	return Category(name), nil
}

// ParseTxType accepts "expense" or "income".
func ParseTxType(s string) (TxType, error) {
	name, err := matchName(s, []string{string(TypeExpense), string(TypeIncome)}, "type")
	if err != nil {
		return "", err
	}
	return TxType(name), nil
}

func matchName(input string, names []string, kind string) (string, error) {
	key := normalizeName(input)
	if key == "" {
		return "", fmt.Errorf("empty %s", kind)
	}
	for _, n := range names {
		if normalizeName(n) == key {
			return n, nil
		}
	}
	if hint := closest(key, names); hint != "" {
		return "", fmt.Errorf("unknown %s %q (did you mean %q?)", kind, input, hint)
	}
	return "", fmt.Errorf("unknown %s %q (expected one of: %s)", kind, input, strings.Join(names, ", "))
}

// closest returns the name nearest to key by edit distance, or "" when
// nothing is reasonably close.
func closest(key string, names []string) string {
	best := ""
	bestRatio := maxSuggestRatio
	for _, n := range names {
		nk := normalizeName(n)
		dist := levenshtein.ComputeDistance(key, nk)
		maxlen := len(key)
		if len(nk) > maxlen {
			maxlen = len(nk)
		}
		ratio := float64(dist) / float64(maxlen)
		if ratio < bestRatio {
			bestRatio = ratio
			best = n
		}
	}
	return best
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}
