package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"hostname", "host_name", "hostnames", "message", "hostName"}

	got := Suggest("hostName", candidates, DefaultThreshold, 0)

	assert.Equal(t, []string{"host_name", "hostname", "hostnames"}, Keys(got))
	assert.Equal(t, 1.0, got[0].Score)
}

func TestSuggestLimitAndThreshold(t *testing.T) {
	candidates := []string{"path", "paths", "pth", "file"}

	got := Suggest("path", candidates, 0.7, 1)
	assert.Equal(t, []string{"paths"}, Keys(got))

	assert.Empty(t, Suggest("path", []string{"message"}, DefaultThreshold, 3))
	assert.Empty(t, Suggest("path", nil, DefaultThreshold, 3))
}
