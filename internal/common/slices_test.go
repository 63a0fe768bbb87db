package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstLast(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = Last([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = First([]string(nil))
	assert.False(t, ok)

	_, ok = Last([]int{})
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	orig := []string{"log", "file"}
	cp := Clone(orig)
	cp[0] = "changed"

	assert.Equal(t, "log", orig[0])
	assert.Nil(t, Clone([]string(nil)))
	assert.True(t, IsEmpty(Clone([]string{})))
}
