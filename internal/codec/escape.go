package codec

import "strings"

const upperhex = "0123456789ABCDEF"

// escapeComponent percent-escapes s the way browsers' encodeURIComponent
// does: every UTF-8 byte except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) becomes %XX.
// url.QueryEscape differs: it writes space as '+' and escapes ! ' ( ) *.
func escapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
