package parser

import (
	"strings"
	"unicode/utf8"
)

// skipCharN advances i over at most max consecutive occurrences of c
func skipCharN(data string, i int, c byte, max int) int {
	n := len(data)
	for i < n && max > 0 && data[i] == c {
		i++
		max--
	}
	return i
}

func skipSpace(data string, i int) int {
	n := len(data)
	for i < n && isSpace(data[i]) {
		i++
	}
	return i
}

// skipLineSpace advances i over spaces and tabs only, never over newlines
func skipLineSpace(data string, i int) int {
	n := len(data)
	for i < n && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	return i
}

// skipUntilChar advances i as long as data[i] != c
func skipUntilChar(data string, i int, c byte) int {
	n := len(data)
	for i < n && data[i] != c {
		i++
	}
	return i
}

// isSpace returns true if c is a white-space character
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isLetter returns true if c is ascii letter
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isAlnum returns true if c is a digit or letter
func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || isLetter(c)
}

// takeUntilUnbalanced consumes data up to the first closing delimiter that
// has no matching opening delimiter in the consumed part. Nested pairs are
// skipped and backslash-escaped delimiters count as literal text. The
// terminating delimiter is not consumed. When the input ends with all pairs
// balanced, the whole input is consumed. An open pair at the end of input is
// a miss.
func takeUntilUnbalanced(data string, open, close byte) (rest, inner string, err error) {
	depth := 0
	i := 0
	for i < len(data) {
		switch data[i] {
		case '\\':
			i++
			if i < len(data) {
				_, size := utf8.DecodeRuneInString(data[i:])
				i += size
			}
		case open:
			depth++
			i++
		case close:
			if depth == 0 {
				return data[i:], data[:i], nil
			}
			depth--
			i++
		default:
			i++
		}
	}
	if depth == 0 {
		return "", data, nil
	}
	return "", "", ErrNoMatch
}

// unescapeString replaces `\X` with `X` for every X in escapable. Other
// backslash sequences stay untouched. The input is returned as is when it
// holds no such escape.
func unescapeString(s, escapable string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte(escapable, s[i+1]) >= 0 {
			b.WriteByte(s[i+1])
			i++
			changed = true
			continue
		}
		b.WriteByte(s[i])
	}
	if !changed {
		return s
	}
	return b.String()
}

// foldWhitespace collapses every whitespace run into a single space and
// trims the ends.
func foldWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
