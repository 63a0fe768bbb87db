package mapping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefinition(t *testing.T) {
	entries := map[string]KeyPath{
		"message": {"message"},
		"logfile": {"log", "file", "path"},
	}

	def, err := NewDefinition(entries)
	require.NoError(t, err)

	// Mutating the input afterwards must not leak into the definition.
	entries["logfile"][0] = "changed"
	entries["extra"] = KeyPath{"extra"}

	p, ok := def.Path("logfile")
	require.True(t, ok)
	assert.Equal(t, KeyPath{"log", "file", "path"}, p)
	assert.Equal(t, 2, def.Len())
}

func TestNewDefinitionErrors(t *testing.T) {
	_, err := NewDefinition(map[string]KeyPath{"": {"a"}, "b": {}})
	require.Error(t, err)

	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, []string{codeEmptyAttribute, codeEmptyPath}, defErr.Diagnostics.Codes())
}

func TestDefinitionPathIsCopy(t *testing.T) {
	def, err := Parse([]byte(`{"a": ["x", "y"]}`))
	require.NoError(t, err)

	p, _ := def.Path("a")
	p[0] = "mutated"

	again, _ := def.Path("a")
	assert.Equal(t, KeyPath{"x", "y"}, again)
}

func TestDefinitionAllStopsEarly(t *testing.T) {
	def, err := Parse([]byte(`{"a": ["a"], "b": ["b"], "c": ["c"]}`))
	require.NoError(t, err)

	var seen []string
	for name := range def.All() {
		seen = append(seen, name)
		if name == "b" {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestDefinitionMarshalJSON(t *testing.T) {
	def, err := Parse([]byte(exampleDefinition))
	require.NoError(t, err)

	data, err := json.Marshal(def)
	require.NoError(t, err)
	assert.JSONEq(t, exampleDefinition, string(data))

	var zero Definition
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDefinitionString(t *testing.T) {
	def, err := Parse([]byte(`{"b": ["host", "hostname"], "a": ["message"]}`))
	require.NoError(t, err)

	assert.Equal(t, "a=message, b=host.hostname", def.String())
}
