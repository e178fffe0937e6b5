// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strings"

	"github.com/textforge/hyperlinks/pkg/parser/decode"
)

// Characters whose backslash escape is honored in Markdown destinations.
var mdEscapable = "\\`*_{}[]()#+-.!:|&<>~^"

// MdText2Dest parses a Markdown inline link `[text](dest "title")`.
// The cursor must sit on the opening bracket. The link text may hold
// balanced bracket pairs and backslash escaped brackets, the destination is
// either angle enclosed or a bare URI without whitespace, and the optional
// title is delimited by double quotes, single quotes or parentheses.
func MdText2Dest(i string) (string, Link, error) {
	rest, text, err := bracketed(i, '[', ']')
	if err != nil {
		return "", Link{}, err
	}
	rest, dest, title, err := mdDestEnclosed(rest)
	if err != nil {
		return "", Link{}, err
	}
	return rest, Link{
		Type:        Text2Dest,
		Family:      Markdown,
		Text:        text,
		Destination: dest,
		Title:       title,
	}, nil
}

// MdText2Label parses the Markdown reference link forms: full
// `[text][label]`, collapsed `[label][]` and shortcut `[label]`. The
// shortcut form is a miss when the closing bracket is followed by `(`, `[`
// or `:`.
func MdText2Label(i string) (string, Link, error) {
	rest, text, err := bracketed(i, '[', ']')
	if err != nil || text == "" {
		return "", Link{}, ErrNoMatch
	}
	if len(rest) > 0 && rest[0] == '[' {
		rest2, label, err2 := bracketed(rest, '[', ']')
		if err2 != nil {
			return "", Link{}, ErrNoMatch
		}
		if label == "" {
			// Collapsed reference.
			label = text
		}
		return rest2, Link{Type: Text2Label, Family: Markdown, Text: text, Label: label}, nil
	}
	if len(rest) > 0 && (rest[0] == '(' || rest[0] == ':') {
		return "", Link{}, ErrNoMatch
	}
	return rest, Link{Type: Text2Label, Family: Markdown, Text: text, Label: text}, nil
}

// MdLabel2Dest parses a Markdown link reference definition
// `[label]: destination "title"`. The cursor must sit at a line start; up to
// three spaces of indentation are tolerated. Destination and title may be
// separated from their predecessor by whitespace holding at most one line
// ending.
func MdLabel2Dest(i string) (string, Link, error) {
	j := skipCharN(i, 0, ' ', 3)
	rest, label, err := bracketed(i[j:], '[', ']')
	if err != nil || label == "" {
		return "", Link{}, ErrNoMatch
	}
	if len(rest) == 0 || rest[0] != ':' {
		return "", Link{}, ErrNoMatch
	}
	rest = rest[1:]
	k := skipSpace(rest, 0)
	if k == 0 || strings.Count(rest[:k], "\n") > 1 {
		return "", Link{}, ErrNoMatch
	}
	after, dest, err := mdDestination(rest[k:])
	if err != nil {
		return "", Link{}, err
	}
	link := Link{Type: Label2Dest, Family: Markdown, Label: label, Destination: dest}
	m := skipSpace(after, 0)
	if m > 0 && m < len(after) && strings.Count(after[:m], "\n") <= 1 {
		if rest2, title, terr := mdTitle(after[m:]); terr == nil {
			link.Title = title
			return rest2, link, nil
		}
	}
	return after, link, nil
}

// MdAutolink parses `<scheme:uri>` where scheme is an ASCII letter followed
// by letters, digits, `+`, `.` or `-`. The enclosed URI must not hold `<`,
// `>`, spaces or ASCII control characters. The URI is percent decoded and
// doubles as the link text.
func MdAutolink(i string) (string, Link, error) {
	if len(i) < 4 || i[0] != '<' || !isLetter(i[1]) {
		return "", Link{}, ErrNoMatch
	}
	j := 2
	for j < len(i) && (isAlnum(i[j]) || i[j] == '+' || i[j] == '.' || i[j] == '-') {
		j++
	}
	if j >= len(i) || i[j] != ':' {
		return "", Link{}, ErrNoMatch
	}
	k := j + 1
	for k < len(i) && i[k] != '>' {
		c := i[k]
		if c == '<' || c == ' ' || c < 0x20 || c == 0x7f {
			return "", Link{}, ErrNoMatch
		}
		k++
	}
	if k >= len(i) || k == j+1 {
		return "", Link{}, ErrNoMatch
	}
	uri, err := decode.Percent(i[1:k])
	if err != nil {
		return "", Link{}, ErrNoMatch
	}
	return i[k+1:], Link{Type: Text2Dest, Family: Markdown, Text: uri, Destination: uri}, nil
}

// MdImage parses an inline image `![alt](src)`.
func MdImage(i string) (string, Link, error) {
	if len(i) < 2 || i[0] != '!' {
		return "", Link{}, ErrNoMatch
	}
	rest, alt, err := bracketed(i[1:], '[', ']')
	if err != nil {
		return "", Link{}, err
	}
	rest, src, _, err := mdDestEnclosed(rest)
	if err != nil {
		return "", Link{}, err
	}
	return rest, Link{Type: Image, Family: Markdown, Text: alt, Destination: src}, nil
}

// bracketed consumes `<open>inner<close>` honoring nested pairs and
// backslash escapes inside inner.
func bracketed(i string, open, close byte) (rest, inner string, err error) {
	if len(i) == 0 || i[0] != open {
		return "", "", ErrNoMatch
	}
	rest, inner, err = takeUntilUnbalanced(i[1:], open, close)
	if err != nil {
		return "", "", err
	}
	if len(rest) == 0 || rest[0] != close {
		return "", "", ErrNoMatch
	}
	return rest[1:], inner, nil
}

// mdDestEnclosed parses `(dest "title")`. The title is optional; stray bytes
// between a valid destination and the closing parenthesis are tolerated the
// way CommonMark renderers commonly do.
func mdDestEnclosed(i string) (rest, dest, title string, err error) {
	rest, inner, err := bracketed(i, '(', ')')
	if err != nil {
		return "", "", "", err
	}
	after, dest, err := mdDestination(inner)
	if err != nil {
		return "", "", "", err
	}
	if k := skipSpace(after, 0); k > 0 && k < len(after) {
		if _, t, terr := mdTitle(after[k:]); terr == nil {
			title = t
		}
	}
	return rest, dest, title, nil
}

// mdDestination parses a link destination: either `<...>` without line
// breaks or unescaped angle brackets, or a bare run without whitespace whose
// parentheses balance. Backslash escapes are decoded.
func mdDestination(i string) (rest, dest string, err error) {
	if len(i) > 0 && i[0] == '<' {
		j := 1
		for j < len(i) {
			switch i[j] {
			case '\\':
				j += 2
			case '>':
				return i[j+1:], unescapeString(i[1:j], mdEscapable), nil
			case '<', '\n', '\r':
				return "", "", ErrNoMatch
			default:
				j++
			}
		}
		return "", "", ErrNoMatch
	}
	j := 0
	for j < len(i) && !isSpace(i[j]) {
		j++
	}
	if j == 0 {
		return "", "", ErrNoMatch
	}
	raw := i[:j]
	rem, consumed, uerr := takeUntilUnbalanced(raw, '(', ')')
	if uerr != nil || rem != "" || consumed != raw {
		return "", "", ErrNoMatch
	}
	return i[j:], unescapeString(raw, mdEscapable), nil
}

// mdTitle parses a link title in one of its three delimited forms. The raw
// title is returned with its escapes kept; a blank line inside is a miss.
func mdTitle(i string) (rest, title string, err error) {
	if i == "" {
		return "", "", ErrNoMatch
	}
	switch i[0] {
	case '(':
		rest, title, err = bracketed(i, '(', ')')
	case '"', '\'':
		q := i[0]
		j := 1
		for j < len(i) {
			if i[j] == '\\' {
				j += 2
				continue
			}
			if i[j] == q {
				rest, title = i[j+1:], i[1:j]
				break
			}
			j++
		}
		if j >= len(i) {
			return "", "", ErrNoMatch
		}
	default:
		return "", "", ErrNoMatch
	}
	if err != nil || strings.Contains(title, "\n\n") {
		return "", "", ErrNoMatch
	}
	return rest, title, nil
}
