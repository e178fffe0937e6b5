// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package links resolves the hyperlink fragments found by pkg/parser into
// complete links. A Scanner walks the input twice: the first pass gathers
// every link reference definition, the second pass yields the links in
// source byte order with labels substituted by their targets.
package links

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/textforge/hyperlinks/pkg/parser"
)

// Mode selects what a Scanner yields.
type Mode int

const (
	// LinksOnly yields resolved hyperlinks and drops definitions.
	LinksOnly Mode = iota
	// LinksAndDefinitions additionally yields the definitions and aliases
	// themselves.
	LinksAndDefinitions
)

// maxAliasHops bounds alias chain resolution; longer chains and cycles
// leave the reference unresolved.
const maxAliasHops = 8

type definition struct {
	dest  string
	title string
}

// Scanner yields the hyperlinks of one input in source order, resolving
// label references against the definitions collected up front. It is not
// safe for concurrent use; any number of Scanners may share one input.
type Scanner struct {
	input  string
	mode   Mode
	images bool

	defs    map[string]definition
	aliases map[string]string

	pos     int
	anonRef int
	link    parser.Link
	span    parser.Span
}

// NewScanner returns a Scanner over input. The collection pass runs here;
// scanning is lazy from then on.
func NewScanner(input string, mode Mode) *Scanner {
	s := &Scanner{input: input, mode: mode}
	s.collect()
	return s
}

// NewImageScanner returns a Scanner that yields only inline images. Images
// carry no references, so no collection pass is needed.
func NewImageScanner(input string) *Scanner {
	return &Scanner{input: input, images: true}
}

// First returns the first hyperlink of input, resolved.
func First(input string) (parser.Link, bool) {
	s := NewScanner(input, LinksOnly)
	if !s.Scan() {
		return parser.Link{}, false
	}
	return s.Link(), true
}

// collect walks the whole input once and fills the resolution tables.
// Anonymous definitions and aliases get the synthetic keys "_1", "_2", … in
// source order. Markdown and reStructuredText keep the first definition of
// a label, Asciidoc attributes keep the last.
func (s *Scanner) collect() {
	s.defs = map[string]definition{}
	s.aliases = map[string]string{}
	anonDef := 0
	pos := 0
	for {
		span, l, ok := parser.TakeLink(s.input, pos)
		if !ok {
			return
		}
		pos = span.End
		switch l.Type {
		case parser.Label2Dest:
			if l.Family == parser.Asciidoc {
				s.defs[l.Label] = definition{dest: l.Destination, title: l.Title}
				continue
			}
			key := parser.Normalize(l.Label)
			if key == "_" {
				anonDef++
				key = fmt.Sprintf("_%d", anonDef)
			}
			if _, taken := s.defs[key]; !taken {
				s.defs[key] = definition{dest: l.Destination, title: l.Title}
			}
		case parser.TextLabel2Dest:
			key := parser.Normalize(l.Label)
			if _, taken := s.defs[key]; !taken {
				s.defs[key] = definition{dest: l.Destination, title: l.Title}
			}
		case parser.Label2Label:
			key := parser.Normalize(l.Label)
			if key == "_" {
				anonDef++
				key = fmt.Sprintf("_%d", anonDef)
			}
			if _, taken := s.aliases[key]; !taken {
				s.aliases[key] = parser.Normalize(l.AliasTarget)
			}
		}
	}
}

// Scan advances to the next yieldable link. It returns false at the end of
// the input.
func (s *Scanner) Scan() bool {
	for {
		var (
			span parser.Span
			l    parser.Link
			ok   bool
		)
		if s.images {
			span, l, ok = parser.TakeImage(s.input, s.pos)
		} else {
			span, l, ok = parser.TakeLink(s.input, s.pos)
		}
		if !ok {
			return false
		}
		s.pos = span.End
		if s.images {
			s.span, s.link = span, l
			return true
		}
		switch l.Type {
		case parser.Image:
			continue
		case parser.Text2Dest:
			if l.Destination == "" {
				continue
			}
			s.span, s.link = span, l
			return true
		case parser.TextLabel2Dest:
			if l.Destination == "" {
				continue
			}
			out := l
			out.Type = parser.Text2Dest
			s.span, s.link = span, out
			return true
		case parser.Text2Label:
			d, found := s.resolve(s.referenceKey(l))
			if !found || d.dest == "" {
				klog.V(6).Infof("dropping unresolved reference %q", l.Label)
				continue
			}
			out := parser.Link{
				Type:        parser.Text2Dest,
				Family:      l.Family,
				Text:        l.Text,
				Destination: d.dest,
				Title:       d.title,
			}
			if out.Text == "" {
				out.Text = d.dest
			}
			s.span, s.link = span, out
			return true
		case parser.Label2Dest, parser.Label2Label:
			if s.mode != LinksAndDefinitions {
				continue
			}
			s.span, s.link = span, l
			return true
		}
	}
}

// Link returns the link found by the last call to Scan.
func (s *Scanner) Link() parser.Link { return s.link }

// Span returns the byte range the last link occupies in the input.
func (s *Scanner) Span() parser.Span { return s.span }

// Source returns the raw input slice the last link was parsed from.
func (s *Scanner) Source() string { return s.input[s.span.Start:s.span.End] }

// referenceKey maps a reference use to its lookup key. Anonymous
// references consume the anonymous definitions in source order.
func (s *Scanner) referenceKey(l parser.Link) string {
	if l.Family == parser.Asciidoc {
		return l.Label
	}
	key := parser.Normalize(l.Label)
	if key == "_" {
		s.anonRef++
		key = fmt.Sprintf("_%d", s.anonRef)
	}
	return key
}

// resolve follows alias chains up to maxAliasHops.
func (s *Scanner) resolve(label string) (definition, bool) {
	l := label
	for hop := 0; hop <= maxAliasHops; hop++ {
		if d, ok := s.defs[l]; ok {
			return d, true
		}
		next, ok := s.aliases[l]
		if !ok {
			return definition{}, false
		}
		l = next
	}
	klog.V(6).Infof("alias chain for %q exceeds %d hops", label, maxAliasHops)
	return definition{}, false
}
