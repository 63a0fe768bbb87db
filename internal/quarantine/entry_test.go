package quarantine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRoundTrip(t *testing.T) {
	e := &Entry{
		Topic:         "logs",
		Partition:     -1,
		Offset:        1 << 40,
		Key:           "",
		Reason:        "record value is not a mapping: got string",
		Payload:       []byte(`"hello"`),
		QuarantinedAt: time.Date(2023, 1, 2, 3, 4, 5, 6000, time.UTC),
	}

	data := marshalEntry(e)
	assert.Len(t, data, entrySize(e))

	got, err := unmarshalEntry(7, data)
	require.NoError(t, err)

	e.ID = 7
	assert.Equal(t, e, got)
}

func TestUnmarshalEntryTruncated(t *testing.T) {
	data := marshalEntry(&Entry{Topic: "logs", Reason: "r", Payload: []byte("{}")})

	_, err := unmarshalEntry(1, data[:len(data)-3])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestEntryKeys(t *testing.T) {
	key := makeEntryKey(258)

	id, ok := parseEntryKey(key)
	require.True(t, ok)
	assert.Equal(t, uint64(258), id)

	_, ok = parseEntryKey([]byte(entryIDSeq))
	assert.False(t, ok)

	assert.Less(t, string(makeEntryKey(9)), string(makeEntryKey(10)))
}
