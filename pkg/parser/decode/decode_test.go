package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntity(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"no entities here", "no entities here"},
		{"my&amp;dog", "my&dog"},
		{"&lt;tag&gt;", "<tag>"},
		{"&#35;", "#"},
		{"&#x22;", "\""},
		{"&uuml;ber", "über"},
		// Malformed entities pass through with their ampersand.
		{"&unknownentity;", "&unknownentity;"},
		{"a & b", "a & b"},
		{"&;", "&;"},
		{"&amp", "&amp"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Entity(tc.in))
		})
	}
}

func TestEntityIdempotent(t *testing.T) {
	for _, in := range []string{"my&amp;dog", "plain", "&#x22;", "über"} {
		once := Entity(in)
		assert.Equal(t, once, Entity(once))
	}
}

func TestPercent(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"nothing", "nothing"},
		{"percent%20encoded string", "percent encoded string"},
		{"http://example.com/%C3%9C", "http://example.com/Ü"},
		{"%5Ba%20b%5D", "[a b]"},
		// Invalid escapes pass through literally.
		{"100%", "100%"},
		{"%zz", "%zz"},
		{"%2", "%2"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Percent(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPercentInvalidUTF8(t *testing.T) {
	_, err := Percent("%FF%FF")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestPercentIdempotent(t *testing.T) {
	for _, in := range []string{"percent%20encoded", "plain", "Ü"} {
		once, err := Percent(in)
		assert.NoError(t, err)
		twice, err := Percent(once)
		assert.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}
