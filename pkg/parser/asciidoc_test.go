package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdocText2Dest(t *testing.T) {
	testCases := []struct {
		in   string
		rest string
		text string
		dest string
	}{
		{"http://getreu.net[My blog]abc", "abc", "My blog", "http://getreu.net"},
		{"https://getreu.net[My blog]abc", "abc", "My blog", "https://getreu.net"},
		{`http://getreu.net[My blog[1\]]abc`, "abc", "My blog[1]", "http://getreu.net"},
		{"http://getreu.net[My\n    blog]abc", "abc", "My blog", "http://getreu.net"},
		{"link:http://getreu.net[My blog]abc", "abc", "My blog", "http://getreu.net"},
		{"link:https://getreu.net/?q=%5Ba%20b%5D[My blog]abc", "abc", "My blog", "https://getreu.net/?q=[a b]"},
		{"link:++https://getreu.net/?q=[a b]++[My blog]abc", "abc", "My blog", "https://getreu.net/?q=[a b]"},
		{"link:../relative/path.html[docs]abc", "abc", "docs", "../relative/path.html"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			rest, l, err := AdocText2Dest(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, Text2Dest, l.Type)
			assert.Equal(t, tc.rest, rest)
			assert.Equal(t, tc.text, l.Text)
			assert.Equal(t, tc.dest, l.Destination)
		})
	}

	misses := []string{
		"http:/destination/[abc",
		"http://destination/(abc",
		"http://destination/ [abc]",
		"link:++https://getreu.net/?q=[a b]+[abc",
		// Percent codes that decode to invalid UTF-8 fail the match.
		"link:https://getreu.net/?q=%FF%FF[abc",
		"[text]abc",
		// A blank line inside the link text.
		"http://getreu.net[My\n\nblog]abc",
	}
	for _, in := range misses {
		_, _, err := AdocText2Dest(in)
		assert.Error(t, err, in)
	}
}

func TestAdocText2Label(t *testing.T) {
	rest, l, err := AdocText2Label("{label2}[text2]abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", rest)
	assert.Equal(t, Text2Label, l.Type)
	assert.Equal(t, "text2", l.Text)
	assert.Equal(t, "label2", l.Label)

	// The bare form has no text of its own.
	rest, l, err = AdocText2Label("{label3}abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", rest)
	assert.Equal(t, "", l.Text)
	assert.Equal(t, "label3", l.Label)

	for _, in := range []string{"{}abc", "{la bel}", "{label", "plain"} {
		_, _, err := AdocText2Label(in)
		assert.Error(t, err, in)
	}
}

func TestAdocLabel2Dest(t *testing.T) {
	rest, l, err := AdocLabel2Dest(":label32: https://destination32\nabc")
	assert.NoError(t, err)
	assert.Equal(t, "\nabc", rest)
	assert.Equal(t, Label2Dest, l.Type)
	assert.Equal(t, Asciidoc, l.Family)
	assert.Equal(t, "label32", l.Label)
	assert.Equal(t, "https://destination32", l.Destination)

	// Attribute names are case-sensitive, so the case survives.
	_, l, err = AdocLabel2Dest(":Label: dest\n")
	assert.NoError(t, err)
	assert.Equal(t, "Label", l.Label)

	for _, in := range []string{":: dest", ":label:\n", ":la bel: dest", "label: dest", ":label:dest"} {
		_, _, err := AdocLabel2Dest(in)
		assert.Error(t, err, in)
	}
}

func TestAdocLinkText(t *testing.T) {
	rest, text, err := adocLinkText("[text]abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", rest)
	assert.Equal(t, "text", text)

	// A single newline with indentation folds into one space.
	_, text, err = adocLinkText("[te\n   xt]abc")
	assert.NoError(t, err)
	assert.Equal(t, "te xt", text)

	// The escaped closing bracket.
	_, text, err = adocLinkText(`[text[i\]]abc`)
	assert.NoError(t, err)
	assert.Equal(t, "text[i]", text)

	for _, in := range []string{"[te\n\nxt]abc", "[textabc"} {
		_, _, err := adocLinkText(in)
		assert.Error(t, err, in)
	}
}
