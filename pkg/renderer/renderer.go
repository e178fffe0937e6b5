// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package renderer turns text with markup hyperlinks into an HTML document
// that shows every input byte verbatim while making the detected links
// clickable.
package renderer

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/textforge/hyperlinks/pkg/links"
)

// textEscaper escapes text content. Quotes stay untouched there; only
// attribute values need them escaped.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// TextRawLinks2HTML renders input verbatim inside <pre>, wrapping each link
// span, markup included, into an anchor element.
func TextRawLinks2HTML(input string) string {
	var b strings.Builder
	_ = TextRawLinks2HTMLWriter(&b, input)
	return b.String()
}

// TextRawLinks2HTMLWriter is TextRawLinks2HTML writing to w.
func TextRawLinks2HTMLWriter(w io.Writer, input string) error {
	return render(w, input, true)
}

// TextLinks2HTML renders input verbatim inside <pre>, replacing each link
// span with an anchor around the link text only.
func TextLinks2HTML(input string) string {
	var b strings.Builder
	_ = TextLinks2HTMLWriter(&b, input)
	return b.String()
}

// TextLinks2HTMLWriter is TextLinks2HTML writing to w.
func TextLinks2HTMLWriter(w io.Writer, input string) error {
	return render(w, input, false)
}

// LinkList writes one "destination TAB text TAB title" line per resolved
// link.
func LinkList(w io.Writer, input string) error {
	s := links.NewScanner(input, links.LinksOnly)
	for s.Scan() {
		l := s.Link()
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", l.Destination, l.Text, l.Title); err != nil {
			return err
		}
	}
	return nil
}

func render(w io.Writer, input string, rawSpan bool) error {
	if _, err := io.WriteString(w, "<pre>"); err != nil {
		return err
	}
	s := links.NewScanner(input, links.LinksOnly)
	last := 0
	for s.Scan() {
		span, l := s.Span(), s.Link()
		if _, err := io.WriteString(w, textEscaper.Replace(input[last:span.Start])); err != nil {
			return err
		}
		inner := l.Text
		if rawSpan {
			inner = input[span.Start:span.End]
		}
		if err := writeAnchor(w, l.Destination, l.Title, inner); err != nil {
			return err
		}
		last = span.End
	}
	if _, err := io.WriteString(w, textEscaper.Replace(input[last:])); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</pre>")
	return err
}

func writeAnchor(w io.Writer, dest, title, inner string) error {
	_, err := fmt.Fprintf(w, `<a href="%s" title="%s">%s</a>`,
		destinationAttr(dest), attrEscape(title), textEscaper.Replace(inner))
	return err
}

// destinationAttr escapes absolute URL destinations for the href attribute.
// Relative destinations pass through byte for byte; neither form gains
// percent encoding here.
func destinationAttr(dest string) string {
	if u, err := url.Parse(dest); err == nil && u.IsAbs() {
		return attrEscape(dest)
	}
	return dest
}

func attrEscape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
