package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLText2Dest(t *testing.T) {
	rest, l, err := HTMLText2Dest(`<a href="dest1" title="title1">text1</a>abc`)
	assert.NoError(t, err)
	assert.Equal(t, "abc", rest)
	assert.Equal(t, Text2Dest, l.Type)
	assert.Equal(t, HTML, l.Family)
	assert.Equal(t, "text1", l.Text)
	assert.Equal(t, "dest1", l.Destination)
	assert.Equal(t, "title1", l.Title)

	// Tag names and attribute names are case-insensitive, closing tag too.
	_, l, err = HTMLText2Dest(`<A HREF='dest2'>text2</A>abc`)
	assert.NoError(t, err)
	assert.Equal(t, "dest2", l.Destination)
	assert.Equal(t, "", l.Title)

	// Unquoted attribute values and ignored attributes.
	_, l, err = HTMLText2Dest(`<a class=x href=dest3 id="y">text3</a>`)
	assert.NoError(t, err)
	assert.Equal(t, "dest3", l.Destination)

	// Attribute values are entity decoded, the inner text is not.
	_, l, err = HTMLText2Dest(`<a href="http://getreu.net/my&amp;dog">R&amp;D</a>`)
	assert.NoError(t, err)
	assert.Equal(t, "http://getreu.net/my&dog", l.Destination)
	assert.Equal(t, "R&amp;D", l.Text)

	misses := []string{
		`<a title="t">text</a>`, // no href
		`<a href="dest">text`,   // no closing tag
		`<abbr href="dest">text</abbr>`,
		`<a href="dest>text</a>`, // unterminated quote
		"plain",
	}
	for _, in := range misses {
		_, _, err := HTMLText2Dest(in)
		assert.Error(t, err, in)
	}
}

func TestHTMLImage(t *testing.T) {
	rest, l, err := HTMLImage(`<img src="/images/my&amp;dog.png" alt="my Dog" width="500">abc`)
	assert.NoError(t, err)
	assert.Equal(t, "abc", rest)
	assert.Equal(t, Image, l.Type)
	assert.Equal(t, "my Dog", l.Text)
	assert.Equal(t, "/images/my&dog.png", l.Destination)

	// Self-closing variants.
	for _, in := range []string{
		`<IMG src="dog.png" alt="My dog"/>abc`,
		`<IMG src="dog.png" alt="My dog" />abc`,
	} {
		rest, l, err = HTMLImage(in)
		assert.NoError(t, err, in)
		assert.Equal(t, "abc", rest)
		assert.Equal(t, "dog.png", l.Destination)
	}

	_, _, err = HTMLImage(`<img alt="no src">`)
	assert.Error(t, err)
}
