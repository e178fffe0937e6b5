// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strings"

	"github.com/textforge/hyperlinks/pkg/parser/decode"
)

// AdocText2Dest parses an Asciidoc inline link: the URL macro
// `https://dest[text]`, the prefixed macro `link:dest[text]` and the literal
// macro `link:++dest++[text]`. The caller must guarantee the cursor sits at
// a line start or right after whitespace. Prefixed macro targets are percent
// decoded, literal ones are taken verbatim.
func AdocText2Dest(i string) (string, Link, error) {
	var (
		dest string
		rest string
	)
	switch {
	case strings.HasPrefix(i, "http://"), strings.HasPrefix(i, "https://"):
		j := adocScanTarget(i)
		if j < 0 {
			return "", Link{}, ErrNoMatch
		}
		dest, rest = i[:j], i[j:]
	case strings.HasPrefix(i, "link:++"):
		end := strings.Index(i[7:], "++")
		if end < 0 {
			return "", Link{}, ErrNoMatch
		}
		dest, rest = i[7:7+end], i[7+end+2:]
		if !strings.HasPrefix(rest, "[") {
			return "", Link{}, ErrNoMatch
		}
	case strings.HasPrefix(i, "link:"):
		r := i[5:]
		j := adocScanTarget(r)
		if j < 0 {
			return "", Link{}, ErrNoMatch
		}
		d, err := decode.Percent(r[:j])
		if err != nil {
			return "", Link{}, ErrNoMatch
		}
		dest, rest = d, r[j:]
	default:
		return "", Link{}, ErrNoMatch
	}
	rest, text, err := adocLinkText(rest)
	if err != nil {
		return "", Link{}, err
	}
	return rest, Link{Type: Text2Dest, Family: Asciidoc, Text: text, Destination: dest}, nil
}

// AdocText2Label parses an attribute substitution reference: `{attr}[text]`
// or the bare `{attr}`. The bare form has empty text; the resolver
// substitutes the attribute value for it.
func AdocText2Label(i string) (string, Link, error) {
	rest, attr, err := adocAttrRef(i)
	if err != nil {
		return "", Link{}, err
	}
	if strings.HasPrefix(rest, "[") {
		if rest2, text, err2 := adocLinkText(rest); err2 == nil {
			return rest2, Link{Type: Text2Label, Family: Asciidoc, Text: text, Label: attr}, nil
		}
	}
	return rest, Link{Type: Text2Label, Family: Asciidoc, Label: attr}, nil
}

// AdocLabel2Dest parses an attribute definition `:attr: value` at a line
// start. The value runs to the end of the line. Attribute names are
// case-sensitive and a later definition overrides an earlier one.
func AdocLabel2Dest(i string) (string, Link, error) {
	if len(i) < 4 || i[0] != ':' {
		return "", Link{}, ErrNoMatch
	}
	j := 1
	for j < len(i) && i[j] != ':' {
		if isSpace(i[j]) || i[j] == '{' || i[j] == '}' {
			return "", Link{}, ErrNoMatch
		}
		j++
	}
	if j >= len(i) || j == 1 {
		return "", Link{}, ErrNoMatch
	}
	attr := i[1:j]
	r := i[j+1:]
	if !strings.HasPrefix(r, " ") {
		return "", Link{}, ErrNoMatch
	}
	e := skipUntilChar(r, 1, '\n')
	value := strings.TrimSpace(r[1:e])
	if value == "" {
		return "", Link{}, ErrNoMatch
	}
	return r[e:], Link{Type: Label2Dest, Family: Asciidoc, Label: attr, Destination: value}, nil
}

// adocScanTarget scans a macro target up to the opening bracket of the link
// text. Whitespace inside a target is a miss; returns -1 when no bracket
// terminates the target.
func adocScanTarget(i string) int {
	j := 0
	for j < len(i) && !isSpace(i[j]) && i[j] != '[' {
		j++
	}
	if j == 0 || j >= len(i) || i[j] != '[' {
		return -1
	}
	return j
}

// adocAttrRef consumes `{attr}`. Attribute names hold neither whitespace
// nor braces.
func adocAttrRef(i string) (rest, attr string, err error) {
	if len(i) < 3 || i[0] != '{' {
		return "", "", ErrNoMatch
	}
	j := 1
	for j < len(i) && i[j] != '}' {
		if isSpace(i[j]) || i[j] == '{' {
			return "", "", ErrNoMatch
		}
		j++
	}
	if j >= len(i) || j == 1 {
		return "", "", ErrNoMatch
	}
	return i[j+1:], i[1:j], nil
}

// adocLinkText consumes `[text]`. `\]` escapes the closing bracket, a
// single newline with its following indentation folds into one space and a
// blank line is a miss.
func adocLinkText(i string) (rest, text string, err error) {
	if !strings.HasPrefix(i, "[") {
		return "", "", ErrNoMatch
	}
	var b strings.Builder
	changed := false
	j := 1
	for j < len(i) {
		switch i[j] {
		case ']':
			out := b.String()
			if !changed {
				out = i[1:j]
			}
			return i[j+1:], out, nil
		case '\\':
			if j+1 < len(i) && i[j+1] == ']' {
				b.WriteByte(']')
				j += 2
				changed = true
				continue
			}
			b.WriteByte('\\')
			j++
		case '\n':
			j++
			for j < len(i) && (i[j] == ' ' || i[j] == '\t') {
				j++
			}
			if j < len(i) && i[j] == '\n' {
				return "", "", ErrNoMatch
			}
			b.WriteByte(' ')
			changed = true
		default:
			b.WriteByte(i[j])
			j++
		}
	}
	return "", "", ErrNoMatch
}
