package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPathString(t *testing.T) {
	tests := []struct {
		path     KeyPath
		expected string
	}{
		{KeyPath{"message"}, "message"},
		{KeyPath{"log", "file", "path"}, "log.file.path"},
		{KeyPath{"a.b", "c"}, `"a.b".c`},
		{KeyPath{"", "c"}, `"".c`},
		{KeyPath{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.path.String())
		})
	}
}

func TestKeyPathHelpers(t *testing.T) {
	p := KeyPath{"log", "file", "path"}

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "path", p.Leaf())
	assert.Equal(t, "", KeyPath{}.Leaf())

	c := p.Clone()
	assert.True(t, p.Equal(c))

	c[0] = "other"
	assert.False(t, p.Equal(c))
	assert.False(t, p.Equal(KeyPath{"log"}))
}
