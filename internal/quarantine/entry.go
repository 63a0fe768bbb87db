package quarantine

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Entry is a quarantined record together with the reason it was rejected.
type Entry struct {
	ID            uint64
	Topic         string
	Partition     int32
	Offset        int64
	Key           string
	Reason        string
	Payload       []byte // JSON encoding of the rejected value
	QuarantinedAt time.Time
}

// entrySize returns the encoded size of e. ID is not encoded; it lives in the key.
func entrySize(e *Entry) int {
	return ord.String.Size(e.Topic) +
		varint.Int32.Size(e.Partition) +
		varint.Int64.Size(e.Offset) +
		ord.String.Size(e.Key) +
		ord.String.Size(e.Reason) +
		ord.String.Size(string(e.Payload)) +
		varint.Int64.Size(e.QuarantinedAt.UnixMicro())
}

// marshalEntry serializes an Entry to bytes.
func marshalEntry(e *Entry) []byte {
	buf := make([]byte, entrySize(e))

	n := ord.String.Marshal(e.Topic, buf)
	n += varint.Int32.Marshal(e.Partition, buf[n:])
	n += varint.Int64.Marshal(e.Offset, buf[n:])
	n += ord.String.Marshal(e.Key, buf[n:])
	n += ord.String.Marshal(e.Reason, buf[n:])
	n += ord.String.Marshal(string(e.Payload), buf[n:])
	varint.Int64.Marshal(e.QuarantinedAt.UnixMicro(), buf[n:])

	return buf
}

// unmarshalEntry deserializes an Entry stored under id.
func unmarshalEntry(id uint64, data []byte) (*Entry, error) {
	var (
		e   = &Entry{ID: id}
		n   int
		off int
		err error
	)

	if e.Topic, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, wrapDecode("topic", err)
	}
	off += n

	if e.Partition, n, err = varint.Int32.Unmarshal(data[off:]); err != nil {
		return nil, wrapDecode("partition", err)
	}
	off += n

	if e.Offset, n, err = varint.Int64.Unmarshal(data[off:]); err != nil {
		return nil, wrapDecode("offset", err)
	}
	off += n

	if e.Key, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, wrapDecode("key", err)
	}
	off += n

	if e.Reason, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, wrapDecode("reason", err)
	}
	off += n

	payload, n, err := ord.String.Unmarshal(data[off:])
	if err != nil {
		return nil, wrapDecode("payload", err)
	}
	off += n
	e.Payload = []byte(payload)

	micros, _, err := varint.Int64.Unmarshal(data[off:])
	if err != nil {
		return nil, wrapDecode("timestamp", err)
	}
	e.QuarantinedAt = time.UnixMicro(micros).UTC()

	return e, nil
}

func wrapDecode(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSerializationFailed, field, err)
}
