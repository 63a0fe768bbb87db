package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attr-mapper/internal/extract"
	"attr-mapper/internal/mapping"
	"attr-mapper/internal/record"
)

func samples(t *testing.T, lines ...string) []any {
	t.Helper()

	out := make([]any, 0, len(lines))
	for _, l := range lines {
		v, err := record.Decode([]byte(l))
		require.NoError(t, err)

		out = append(out, v)
	}

	return out
}

func TestAnalyze(t *testing.T) {
	def, err := mapping.ParseString(`{"message": ["message"], "logfile": ["log", "fle", "path"], ` +
		`"serverHost": ["host", "hostname"], "level": ["message", "level"]}`)
	require.NoError(t, err)

	report := Analyze(def, samples(t,
		`{"message":"a","log":{"file":{"path":"/p"},"flex":[]},"host":{"hostname":"h1"}}`,
		`{"message":"b","host":{}}`,
		`"not a map"`,
	))

	assert.Equal(t, 3, report.Records)
	assert.Equal(t, 1, report.Rejected)

	byName := map[string]Attribute{}
	for _, a := range report.Attributes {
		byName[a.Name] = a
	}

	assert.Equal(t, 2, byName["message"].Present)
	assert.Equal(t, 1.0, byName["message"].Coverage())

	assert.Equal(t, 1, byName["serverHost"].Present)
	assert.Equal(t, 1, byName["serverHost"].Absent)
	assert.Equal(t, 0.5, byName["serverHost"].Coverage())

	logfile := byName["logfile"]
	assert.Zero(t, logfile.Present)
	require.NotNil(t, logfile.FirstMiss)
	assert.Equal(t, extract.ReasonMissingKey, logfile.FirstMiss.Reason)
	assert.Equal(t, 1, logfile.FirstMiss.Depth)

	require.Len(t, report.Diagnostics.Warnings, 3)

	shape := report.Diagnostics.Warnings[0]
	assert.Equal(t, codeRecordShape, shape.Code)

	// Never-present warnings follow attribute order: level, logfile.
	level := report.Diagnostics.Warnings[1]
	assert.Equal(t, "level", level.Attribute)
	assert.Contains(t, level.Message, "not a mapping")

	miss := report.Diagnostics.Warnings[2]
	assert.Equal(t, codeNeverPresent, miss.Code)
	assert.Equal(t, "logfile", miss.Attribute)
	assert.Equal(t, []string{"file", "flex"}, miss.Suggestions)
	assert.False(t, report.Diagnostics.HasErrors())
}

func TestAnalyzeNoSamples(t *testing.T) {
	def, err := mapping.ParseString(`{"a":["a"]}`)
	require.NoError(t, err)

	report := Analyze(def, nil)
	assert.Zero(t, report.Records)
	require.Len(t, report.Attributes, 1)
	assert.Zero(t, report.Attributes[0].Coverage())
	assert.Empty(t, report.Diagnostics.Warnings)
}

func TestAnalyzeNullValue(t *testing.T) {
	def, err := mapping.ParseString(`{"lvl":["level"]}`)
	require.NoError(t, err)

	report := Analyze(def, samples(t, `{"level":null}`))
	require.Len(t, report.Diagnostics.Warnings, 1)
	assert.Contains(t, report.Diagnostics.Warnings[0].Message, "null value")
	assert.Empty(t, report.Diagnostics.Warnings[0].Suggestions)
}
