package record

import (
	"fmt"
	"time"
)

// Record is one inbound message.
type Record struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       string
	Timestamp time.Time
	// Value is the decoded payload: map[string]any for objects, otherwise a
	// scalar, a []any, or nil.
	Value any
}

// RecordValue returns the payload the extractor traverses.
func (r *Record) RecordValue() any {
	if r == nil {
		return nil
	}

	return r.Value
}

// Origin identifies the record as "topic/partition@offset".
func (r *Record) Origin() string {
	return fmt.Sprintf("%s/%d@%d", r.Topic, r.Partition, r.Offset)
}
