// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"

	"golang.org/x/text/cases"
)

// ErrNoMatch is returned by every recognizer when the input at the cursor is
// not an instance of its grammar. An open construct running into the end of
// the input is reported the same way.
var ErrNoMatch = errors.New("no hyperlink at input start")

// LinkType classifies what a recognizer found.
type LinkType int

const (
	// Text2Dest is an inline link carrying its destination directly.
	Text2Dest LinkType = iota
	// Text2Label is a reference link naming a definition declared elsewhere.
	Text2Label
	// Label2Dest is a link reference definition.
	Label2Dest
	// TextLabel2Dest is an inline link that simultaneously defines its own
	// text as a label, as reStructuredText `text <dest>`_ does.
	TextLabel2Dest
	// Label2Label declares a label as alias for another label.
	Label2Label
	// Image is an inline image reference.
	Image
)

// Family names the markup grammar a link was recognized in.
type Family int

const (
	// Markdown is CommonMark.
	Markdown Family = iota
	// RST is reStructuredText.
	RST
	// Asciidoc is the Asciidoc/Asciidoctor grammar.
	Asciidoc
	// HTML is plain HTML anchors and images.
	HTML
)

// Link is a hyperlink, a hyperlink fragment or an image recognized in the
// input. Which fields are populated depends on Type. String fields alias the
// input wherever no escape, entity or percent decoding took place.
type Link struct {
	Type   LinkType
	Family Family
	// Text is the rendered anchor text.
	Text string
	// Label names a link reference definition, either used (Text2Label) or
	// declared (Label2Dest, Label2Label, TextLabel2Dest). The anonymous
	// label is "_".
	Label string
	// AliasTarget is the label a Label2Label alias points to.
	AliasTarget string
	Destination string
	Title       string
}

// Span is a half-open byte range into the scanned input.
type Span struct {
	Start int
	End   int
}

var labelFolder = cases.Fold()

// Normalize maps a Markdown or reStructuredText link label to its lookup
// form: internal whitespace runs collapse to one space, the ends are trimmed
// and the result is Unicode case folded. Asciidoc attribute names are
// case-sensitive and must not be normalized.
func Normalize(label string) string {
	return labelFolder.String(foldWhitespace(label))
}
