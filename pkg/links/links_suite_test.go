// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package links_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/textforge/hyperlinks/pkg/links"
	"github.com/textforge/hyperlinks/pkg/parser"
)

func TestLinks(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Links Suite")
}

var _ = Describe("Scanner", func() {
	Describe("scanning mixed markup", func() {
		var input string

		BeforeEach(func() {
			input = "abc[md text](md_dest \"md title\")abc\n" +
				"abc `rst text <rst_dest>`__abc\n" +
				"abc https://adoc_dest[adoc text]abc\n" +
				"abc<a href=\"html_dest\">html text</a>abc\n"
		})

		It("should yield every family in source order", func() {
			s := links.NewScanner(input, links.LinksOnly)
			var families []parser.Family
			var dests []string
			for s.Scan() {
				families = append(families, s.Link().Family)
				dests = append(dests, s.Link().Destination)
			}
			Expect(families).To(Equal([]parser.Family{parser.Markdown, parser.RST, parser.Asciidoc, parser.HTML}))
			Expect(dests).To(Equal([]string{"md_dest", "rst_dest", "https://adoc_dest", "html_dest"}))
		})

		It("should report spans that slice the scanned source", func() {
			s := links.NewScanner(input, links.LinksOnly)
			for s.Scan() {
				span := s.Span()
				Expect(input[span.Start:span.End]).To(Equal(s.Source()))
			}
		})
	})

	Describe("scanning adversarial input", func() {
		It("should terminate on unclosed constructs", func() {
			for _, input := range []string{"[", "[a](", "`a <b", "<a href=\"", "{", ".. _x", "__ "} {
				s := links.NewScanner(input, links.LinksAndDefinitions)
				count := 0
				for s.Scan() && count < 100 {
					count++
				}
				Expect(count).To(BeNumerically("<", 100), input)
			}
		})
	})
})
