// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/textforge/hyperlinks/pkg/parser/decode"
)

// HTMLText2Dest parses an HTML anchor `<a …>…</a>`. Tag and attribute names
// are case-insensitive, attribute values may be double quoted, single
// quoted or unquoted and are entity decoded. `href` is required, `title`
// optional, everything else is ignored. The inner text runs raw up to the
// next closing tag; entities inside it are left for the renderer.
func HTMLText2Dest(i string) (string, Link, error) {
	rest, attrs, err := htmlTag(i, "a")
	if err != nil {
		return "", Link{}, err
	}
	var href, title string
	for _, a := range attrs {
		switch a.name {
		case "href":
			href = a.value
		case "title":
			title = a.value
		}
	}
	if href == "" {
		return "", Link{}, ErrNoMatch
	}
	end := indexFold(rest, "</a>")
	if end < 0 {
		return "", Link{}, ErrNoMatch
	}
	return rest[end+4:], Link{
		Type:        Text2Dest,
		Family:      HTML,
		Text:        rest[:end],
		Destination: href,
		Title:       title,
	}, nil
}

// HTMLImage parses an HTML image element `<img … src=… alt=…>`, with or
// without the self-closing slash. `src` is required, `alt` optional.
func HTMLImage(i string) (string, Link, error) {
	rest, attrs, err := htmlTag(i, "img")
	if err != nil {
		return "", Link{}, err
	}
	var src, alt string
	for _, a := range attrs {
		switch a.name {
		case "src":
			src = a.value
		case "alt":
			alt = a.value
		}
	}
	if src == "" {
		return "", Link{}, ErrNoMatch
	}
	return rest, Link{Type: Image, Family: HTML, Text: alt, Destination: src}, nil
}

type htmlAttr struct {
	name  string
	value string
}

// htmlTag consumes `<name attrs…>` or `<name attrs…/>` and lexes the
// attribute list. Attribute values are entity decoded; names are lowered.
func htmlTag(i, name string) (rest string, attrs []htmlAttr, err error) {
	if len(i) < len(name)+2 || i[0] != '<' || !equalFold(i[1:1+len(name)], name) {
		return "", nil, ErrNoMatch
	}
	j := 1 + len(name)
	if !isSpace(i[j]) && i[j] != '>' && i[j] != '/' {
		return "", nil, ErrNoMatch
	}
	for {
		j = skipSpace(i, j)
		if j >= len(i) {
			return "", nil, ErrNoMatch
		}
		switch {
		case i[j] == '>':
			return i[j+1:], attrs, nil
		case i[j] == '/' && j+1 < len(i) && i[j+1] == '>':
			return i[j+2:], attrs, nil
		}
		ns := j
		for j < len(i) && !isSpace(i[j]) && i[j] != '=' && i[j] != '>' && i[j] != '/' {
			j++
		}
		if j == ns {
			return "", nil, ErrNoMatch
		}
		a := htmlAttr{name: lowerASCII(i[ns:j])}
		k := skipSpace(i, j)
		if k < len(i) && i[k] == '=' {
			j = skipSpace(i, k+1)
			if j >= len(i) {
				return "", nil, ErrNoMatch
			}
			switch i[j] {
			case '"', '\'':
				q := i[j]
				e := skipUntilChar(i, j+1, q)
				if e >= len(i) {
					return "", nil, ErrNoMatch
				}
				a.value = i[j+1 : e]
				j = e + 1
			default:
				e := j
				for e < len(i) && !isSpace(i[e]) && i[e] != '>' {
					e++
				}
				if e == j {
					return "", nil, ErrNoMatch
				}
				a.value = i[j:e]
				j = e
			}
		}
		a.value = decode.Entity(a.value)
		attrs = append(attrs, a)
	}
}

// equalFold is an ASCII-only strings.EqualFold, enough for tag names.
func equalFold(s, t string) bool {
	if len(s) != len(t) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lowerByte(s[i]) != lowerByte(t[i]) {
			return false
		}
	}
	return true
}

// indexFold returns the first ASCII case-insensitive occurrence of sub.
func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if equalFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func lowerASCII(s string) string {
	lowered := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			lowered = false
			break
		}
	}
	if lowered {
		return s
	}
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = lowerByte(s[i])
	}
	return string(b)
}
