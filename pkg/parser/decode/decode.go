// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package decode holds the character level decoders shared by the markup
// recognizers: HTML entity references and percent encoded octets. Both
// decoders return their input unchanged (same backing string) when nothing
// was decoded, so callers can rely on the result aliasing the scanned input.
package decode

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrInvalidUTF8 reports percent codes that decode to bytes which are not
// well-formed UTF-8. The surrounding parser fails its match on it.
var ErrInvalidUTF8 = errors.New("percent decoding produced invalid UTF-8")

// Entity decodes `&name;`, `&#DDDD;` and `&#xHHHH;` character references.
// A malformed entity passes through literally, ampersand included.
func Entity(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		// Lex one entity candidate: '&', optional '#', alphanumerics,
		// terminated by ';'.
		j := i + 1
		for j < len(s) && j-i < 32 {
			c := s[j]
			if isAlnum(c) || (j == i+1 && c == '#') || (j == i+2 && s[i+1] == '#' && (c == 'x' || c == 'X')) {
				j++
				continue
			}
			if c == ';' {
				j++
			}
			break
		}
		candidate := s[i:j]
		if !strings.HasSuffix(candidate, ";") {
			b.WriteByte('&')
			i++
			continue
		}
		decoded := html.UnescapeString(candidate)
		if decoded == candidate {
			// Unknown entity name, pass through literally.
			b.WriteByte('&')
			i++
			continue
		}
		b.WriteString(decoded)
		i = j
		changed = true
	}
	if !changed {
		return s
	}
	return b.String()
}

// Percent decodes `%HH` octet sequences. Invalid escapes pass through
// literally. Decoded bytes that are not well-formed UTF-8 yield
// ErrInvalidUTF8.
func Percent(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(hexVal(s[i+1])<<4 | hexVal(s[i+2]))
			i += 3
			changed = true
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	if !changed {
		return s, nil
	}
	out := b.String()
	if !utf8.ValidString(out) {
		return "", ErrInvalidUTF8
	}
	return out, nil
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
