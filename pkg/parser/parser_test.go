package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectAll(input string) (spans []Span, found []Link) {
	pos := 0
	for {
		span, l, ok := TakeLink(input, pos)
		if !ok {
			return
		}
		spans = append(spans, span)
		found = append(found, l)
		pos = span.End
	}
}

func TestTakeLinkOrder(t *testing.T) {
	input := "abc [md](dest1) abc `rst <dest2>`__ abc\n" +
		"https://dest3[adoc] abc <a href=\"dest4\">html</a> <http://dest5>\n"
	_, found := collectAll(input)
	var dests []string
	for _, l := range found {
		dests = append(dests, l.Destination)
	}
	assert.Equal(t, []string{"dest1", "dest2", "https://dest3", "dest4", "http://dest5"}, dests)
}

func TestTakeLinkPriorities(t *testing.T) {
	// The anchor wins over the autolink interpretation.
	_, found := collectAll(`<a href="dest">http://inner</a>`)
	assert.Len(t, found, 1)
	assert.Equal(t, HTML, found[0].Family)
	assert.Equal(t, "dest", found[0].Destination)

	// A definition at a line start wins over the shortcut reference.
	_, found = collectAll("[label]: dest\n")
	assert.Len(t, found, 1)
	assert.Equal(t, Label2Dest, found[0].Type)

	// The same bytes not at a line start parse as nothing: the colon blocks
	// the shortcut form.
	_, found = collectAll("abc [label]: dest")
	assert.Empty(t, found)
}

func TestTakeLinkSpanFidelity(t *testing.T) {
	inputs := []string{
		"abc[text11][label11]abc\n[label11]: destination1 \"title11\"\n",
		"abc text23__ abc\nabc text25__ abc\n.. __: destination23\n__ destination25\n",
		"abc {label32}[text32]abc\n:label32: https://destination32\n",
		`abc<a href="dest1" title="title1">text1</a>abc`,
		"no links at all",
		"`text <dest>`_ and ![img](src.png)",
	}
	for _, input := range inputs {
		spans, _ := collectAll(input)
		var b strings.Builder
		last := 0
		for _, s := range spans {
			assert.GreaterOrEqual(t, s.Start, last)
			assert.Greater(t, s.End, s.Start)
			b.WriteString(input[last:s.Start])
			b.WriteString(input[s.Start:s.End])
			last = s.End
		}
		b.WriteString(input[last:])
		assert.Equal(t, input, b.String())
	}
}

func TestTakeLinkNeverPanics(t *testing.T) {
	// Truncations and mutations of construct starts must parse or miss,
	// never diverge.
	seeds := []string{
		"[a](b \"c\") [d][e] [f] <g:h> `i <j>`__ {k}[l] :m: n\n.. _o: p\n__ q\n<a href='r'>s</a>",
		"\\[\\]``__  .. _: \n:::\n%%%&&&<<>>",
		"ä€𝄞 [ä](€) `𝄞 <ü>`_",
	}
	for _, seed := range seeds {
		for cut := 0; cut <= len(seed); cut++ {
			in := seed[:cut]
			pos := 0
			for {
				span, _, ok := TakeLink(in, pos)
				if !ok {
					break
				}
				if !assert.Greater(t, span.End, pos, "must advance on %q", in) {
					return
				}
				pos = span.End
			}
		}
	}
}

func TestTakeImage(t *testing.T) {
	input := "abc<img src=\"dest1\" alt=\"text1\">abc\nabc ![text2](dest2) <a href=\"x\">y</a>\n"
	var imgs []Link
	pos := 0
	for {
		span, l, ok := TakeImage(input, pos)
		if !ok {
			break
		}
		imgs = append(imgs, l)
		pos = span.End
	}
	assert.Len(t, imgs, 2)
	assert.Equal(t, "dest1", imgs[0].Destination)
	assert.Equal(t, "text1", imgs[0].Text)
	assert.Equal(t, "dest2", imgs[1].Destination)
}
