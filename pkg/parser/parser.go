// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"unicode/utf8"
)

// recognizer is the common shape of all micro-parsers: it either consumes a
// link at the input start or reports ErrNoMatch.
type recognizer func(string) (string, Link, error)

// inlineTrials maps the byte under the cursor to the recognizers worth
// trying there, in priority order.
var inlineTrials [256][]recognizer

// definitionTrials run only when the cursor sits at a line start.
var definitionTrials []recognizer

func init() {
	inlineTrials['<'] = []recognizer{HTMLText2Dest, HTMLImage, MdAutolink}
	inlineTrials['['] = []recognizer{MdText2Dest, MdText2Label}
	inlineTrials['!'] = []recognizer{MdImage}
	inlineTrials['`'] = []recognizer{RstText2Dest, RstText2Label}
	inlineTrials['{'] = []recognizer{AdocText2Label}
	definitionTrials = []recognizer{MdLabel2Dest, rstExplicitTarget, AdocLabel2Dest}
}

// TakeLink scans input from pos for the next hyperlink, definition or image
// in any of the supported grammars and returns it together with the byte
// span it occupies. At every cursor position the recognizers run in a fixed
// priority order: line-start definitions, HTML, Markdown, reStructuredText,
// Asciidoc, Markdown autolinks. On a miss the cursor advances one codepoint.
func TakeLink(input string, pos int) (Span, Link, bool) {
	for p := pos; p < len(input); {
		if p == 0 || input[p-1] == '\n' {
			for _, parse := range definitionTrials {
				if rest, l, err := parse(input[p:]); err == nil {
					return Span{Start: p, End: len(input) - len(rest)}, l, true
				}
			}
		}
		c := input[p]
		for _, parse := range inlineTrials[c] {
			if rest, l, err := parse(input[p:]); err == nil {
				return Span{Start: p, End: len(input) - len(rest)}, l, true
			}
		}
		if p == 0 || isSpace(input[p-1]) {
			if isWordStart(c) {
				if rest, l, err := RstText2Label(input[p:]); err == nil {
					return Span{Start: p, End: len(input) - len(rest)}, l, true
				}
			}
			if c == 'h' || c == 'l' {
				if rest, l, err := AdocText2Dest(input[p:]); err == nil {
					return Span{Start: p, End: len(input) - len(rest)}, l, true
				}
			}
		}
		_, size := utf8.DecodeRuneInString(input[p:])
		p += size
	}
	return Span{}, Link{}, false
}

// TakeImage scans input from pos for the next inline image only, HTML
// `<img>` or Markdown `![alt](src)`.
func TakeImage(input string, pos int) (Span, Link, bool) {
	for p := pos; p < len(input); {
		switch input[p] {
		case '<':
			if rest, l, err := HTMLImage(input[p:]); err == nil {
				return Span{Start: p, End: len(input) - len(rest)}, l, true
			}
		case '!':
			if rest, l, err := MdImage(input[p:]); err == nil {
				return Span{Start: p, End: len(input) - len(rest)}, l, true
			}
		}
		_, size := utf8.DecodeRuneInString(input[p:])
		p += size
	}
	return Span{}, Link{}, false
}

// isWordStart reports bytes that can begin a reStructuredText reference
// word. Multibyte sequence starts count, the recognizer sorts them out.
func isWordStart(c byte) bool {
	return isAlnum(c) || c == '_' || c >= utf8.RuneSelf
}
