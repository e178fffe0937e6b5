// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strings"
)

// Characters whose backslash escape is honored in reStructuredText.
const rstEscapable = "\\`:<>_"

// RstText2Dest parses a reStructuredText hyperlink reference with embedded
// URI: `` `text <dest>`_ `` or the anonymous `` `text <dest>`__ ``. The
// single underscore form simultaneously declares the text as a label
// (TextLabel2Dest); when the embedded target itself ends with an underscore
// it is an embedded alias and a Text2Label reference is returned.
func RstText2Dest(i string) (string, Link, error) {
	rest, inner, err := rstPhrase(i)
	if err != nil {
		return "", Link{}, err
	}
	anonymous := false
	if strings.HasPrefix(rest, "_") {
		anonymous = true
		rest = rest[1:]
	}
	t := rstScanEscaped(inner, "<")
	if t >= len(inner) {
		return "", Link{}, ErrNoMatch
	}
	text := rstUnescapeText(strings.TrimRight(inner[:t], " \t"))
	if text == "" {
		return "", Link{}, ErrNoMatch
	}
	destPart := inner[t:]
	if len(destPart) < 2 || destPart[0] != '<' {
		return "", Link{}, ErrNoMatch
	}
	d := rstScanEscaped(destPart[1:], "<>")
	if 1+d >= len(destPart) || destPart[1+d] != '>' {
		return "", Link{}, ErrNoMatch
	}
	if 1+d+1 != len(destPart) {
		// Bytes between `>` and the closing backtick.
		return "", Link{}, ErrNoMatch
	}
	destRaw := destPart[1 : 1+d]
	if strings.HasSuffix(destRaw, "_") && !strings.HasSuffix(destRaw, `\_`) {
		// Embedded alias `text <label_>`_.
		label := rstUnescapeText(destRaw[:len(destRaw)-1])
		return rest, Link{Type: Text2Label, Family: RST, Text: text, Label: label}, nil
	}
	dest := rstUnescapeDest(destRaw)
	if anonymous {
		return rest, Link{Type: Text2Dest, Family: RST, Text: text, Destination: dest}, nil
	}
	return rest, Link{
		Type:        TextLabel2Dest,
		Family:      RST,
		Text:        text,
		Label:       text,
		Destination: dest,
	}, nil
}

// RstText2Label parses a named or anonymous reference: `` `text`_ ``,
// `text_`, `` `text`__ `` or `text__`. For the bare word forms the caller
// must guarantee the cursor sits at the input start or right after
// whitespace. Anonymous references carry the label "_".
func RstText2Label(i string) (string, Link, error) {
	if i == "" {
		return "", Link{}, ErrNoMatch
	}
	if i[0] == '`' {
		rest, inner, err := rstPhrase(i)
		if err != nil {
			return "", Link{}, err
		}
		text := rstUnescapeText(inner)
		if text == "" {
			return "", Link{}, ErrNoMatch
		}
		label := text
		if strings.HasPrefix(rest, "_") {
			rest = rest[1:]
			label = "_"
		}
		return rest, Link{Type: Text2Label, Family: RST, Text: text, Label: label}, nil
	}
	j := 0
	for j < len(i) && !isSpace(i[j]) {
		j++
	}
	word := i[:j]
	switch {
	case strings.HasSuffix(word, "__"):
		text := rstUnescapeText(word[:len(word)-2])
		if text == "" {
			return "", Link{}, ErrNoMatch
		}
		return i[j:], Link{Type: Text2Label, Family: RST, Text: text, Label: "_"}, nil
	case strings.HasSuffix(word, "_"):
		text := rstUnescapeText(word[:len(word)-1])
		if text == "" {
			return "", Link{}, ErrNoMatch
		}
		return i[j:], Link{Type: Text2Label, Family: RST, Text: text, Label: text}, nil
	}
	return "", Link{}, ErrNoMatch
}

// RstLabel2Dest parses an explicit hyperlink target whose destination is a
// URI: `.. _label: dest`, `.. __: dest` or the short anonymous `__ dest`.
// Alias targets are a miss here, see RstLabel2Label.
func RstLabel2Dest(i string) (string, Link, error) {
	rest, l, err := rstExplicitTarget(i)
	if err != nil || l.Type != Label2Dest {
		return "", Link{}, ErrNoMatch
	}
	return rest, l, nil
}

// RstLabel2Label parses an explicit hyperlink target declaring a label
// alias: `.. _label: other_`.
func RstLabel2Label(i string) (string, Link, error) {
	rest, l, err := rstExplicitTarget(i)
	if err != nil || l.Type != Label2Label {
		return "", Link{}, ErrNoMatch
	}
	return rest, l, nil
}

// rstExplicitTarget parses any explicit target form at a line start,
// including the folded multi-line block variant. The label "_" marks
// anonymous definitions.
func rstExplicitTarget(i string) (string, Link, error) {
	j := 0
	for j < len(i) && i[j] == ' ' {
		j++
	}
	// Short anonymous form `__ dest`.
	if strings.HasPrefix(i[j:], "__ ") {
		e := skipUntilChar(i, j+3, '\n')
		destRaw := strings.TrimRight(i[j+3:e], " \t")
		if strings.TrimSpace(destRaw) == "" {
			return "", Link{}, ErrNoMatch
		}
		return i[e:], rstTarget("_", destRaw), nil
	}
	rest, content, err := rstExplicitMarkupBlock(i)
	if err != nil {
		return "", Link{}, err
	}
	labelRaw, destRaw, err := rstParseLabel2Dest(content)
	if err != nil {
		return "", Link{}, err
	}
	label := rstUnescapeText(labelRaw)
	if label == "" {
		return "", Link{}, ErrNoMatch
	}
	return rest, rstTarget(label, destRaw), nil
}

// rstTarget classifies a parsed target as definition or alias.
func rstTarget(label, destRaw string) Link {
	d := strings.TrimRight(destRaw, " \t")
	if strings.HasSuffix(d, "_") && !strings.HasSuffix(d, `\_`) {
		target := d[:len(d)-1]
		if strings.HasPrefix(target, "`") && strings.HasSuffix(target, "`") && len(target) > 1 {
			target = target[1 : len(target)-1]
		}
		if target != "" {
			return Link{
				Type:        Label2Label,
				Family:      RST,
				Label:       label,
				AliasTarget: rstUnescapeText(target),
			}
		}
	}
	return Link{
		Type:        Label2Dest,
		Family:      RST,
		Label:       label,
		Destination: rstUnescapeDest(destRaw),
	}
}

// rstPhrase consumes `` `inner` `` followed by one `_` and returns the
// remaining input after that underscore.
func rstPhrase(i string) (rest, inner string, err error) {
	if len(i) < 4 || i[0] != '`' {
		return "", "", ErrNoMatch
	}
	j := rstScanEscaped(i[1:], "`")
	if 1+j >= len(i) || i[1+j] != '`' {
		return "", "", ErrNoMatch
	}
	inner = i[1 : 1+j]
	rest = i[1+j+1:]
	if !strings.HasPrefix(rest, "_") {
		return "", "", ErrNoMatch
	}
	return rest[1:], inner, nil
}

// rstExplicitMarkupBlock consumes `.. ` at a (possibly indented) line start
// and the block lines folded into one string. Continuation lines must be
// indented three columns deeper than the explicit markup start; deeper
// indentation is preserved.
func rstExplicitMarkupBlock(i string) (rest, content string, err error) {
	j := 0
	for j < len(i) && i[j] == ' ' {
		j++
	}
	wsp1 := i[:j]
	if !strings.HasPrefix(i[j:], ".. ") {
		return "", "", ErrNoMatch
	}
	p := j + 3
	cont := "\n" + wsp1 + "   "
	var lines []string
	for {
		e := skipUntilChar(i, p, '\n')
		lines = append(lines, i[p:e])
		if strings.HasPrefix(i[e:], cont) {
			p = e + len(cont)
			continue
		}
		rest = i[e:]
		break
	}
	if len(lines) == 1 {
		return rest, lines[0], nil
	}
	return rest, strings.Join(lines, " "), nil
}

// rstParseLabel2Dest splits an explicit markup block body `_label: dest`,
// also accepting the backquoted `` _`label`: dest `` form which may hold
// colons.
func rstParseLabel2Dest(c string) (label, dest string, err error) {
	if c == "" || c[0] != '_' {
		return "", "", ErrNoMatch
	}
	c = c[1:]
	if strings.HasPrefix(c, "`") {
		j := rstScanEscaped(c[1:], "`")
		if 1+j >= len(c) || !strings.HasPrefix(c[1+j:], "`: ") {
			return "", "", ErrNoMatch
		}
		return c[1 : 1+j], c[1+j+3:], nil
	}
	j := rstScanEscaped(c, ":")
	if j >= len(c) || !strings.HasPrefix(c[j:], ": ") {
		return "", "", ErrNoMatch
	}
	return c[:j], c[j+2:], nil
}

// rstScanEscaped returns the index of the first unescaped stop byte, or
// len(s) when none occurs.
func rstScanEscaped(s, stops string) int {
	i := 0
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if strings.IndexByte(stops, s[i]) >= 0 {
			return i
		}
		i++
	}
	return len(s)
}

// rstUnescapeText decodes backslash escapes in link text and labels.
// The escaped space `\ ` disappears entirely.
func rstUnescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			c := s[i+1]
			if c == ' ' {
				i++
				changed = true
				continue
			}
			if strings.IndexByte(rstEscapable, c) >= 0 {
				b.WriteByte(c)
				i++
				changed = true
				continue
			}
		}
		b.WriteByte(s[i])
	}
	if !changed {
		return s
	}
	return b.String()
}

// rstUnescapeDest decodes a link destination: unescaped whitespace (from
// line folding) is deleted, `\ ` keeps one space, other escapes decode to
// their character.
func rstUnescapeDest(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if isSpace(c) {
			continue
		}
		b.WriteByte(c)
	}
	out := b.String()
	if out == s {
		return s
	}
	return out
}
