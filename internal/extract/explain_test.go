package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"attr-mapper/internal/mapping"
)

func TestExplain(t *testing.T) {
	root := map[string]any{
		"message": "hello",
		"log":     map[string]any{"file": map[string]any{"path": "/p"}, "level": nil},
	}

	tests := []struct {
		name   string
		path   mapping.KeyPath
		depth  int
		reason AbsenceReason
		keys   []string
	}{
		{name: "found", path: mapping.KeyPath{"log", "file", "path"}, depth: 2, reason: ReasonNone},
		{name: "missing top", path: mapping.KeyPath{"msg"}, depth: 0, reason: ReasonMissingKey, keys: []string{"log", "message"}},
		{name: "missing nested", path: mapping.KeyPath{"log", "fle", "path"}, depth: 1, reason: ReasonMissingKey, keys: []string{"file", "level"}},
		{name: "null", path: mapping.KeyPath{"log", "level"}, depth: 1, reason: ReasonNullValue, keys: []string{"file", "level"}},
		{name: "scalar before end", path: mapping.KeyPath{"message", "text"}, depth: 1, reason: ReasonNotMapping},
		{name: "empty", path: mapping.KeyPath{}, depth: 0, reason: ReasonEmptyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Explain(root, tt.path)
			assert.Equal(t, tt.depth, out.Depth)
			assert.Equal(t, tt.reason, out.Reason)
			assert.Equal(t, tt.keys, out.Keys)

			value, found := Resolve(root, tt.path)
			assert.Equal(t, found, out.Found)
			assert.Equal(t, value, out.Value)
		})
	}
}

func TestAbsenceReasonString(t *testing.T) {
	assert.Equal(t, "missing key", ReasonMissingKey.String())
	assert.Equal(t, "not a mapping", ReasonNotMapping.String())
	assert.Equal(t, "unknown", AbsenceReason(99).String())
}
