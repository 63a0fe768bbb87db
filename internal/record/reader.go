package record

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

const maxLineSize = 16 * 1024 * 1024

// Reader decodes one record per non-blank line of JSON input.
// Offsets count lines that held a record, starting at 0, so a line that
// fails to decode still consumes an offset.
type Reader struct {
	scanner   *bufio.Scanner
	topic     string
	partition int32
	line      int
	offset    int64
	now       func() time.Time
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithPartition sets the partition stamped on every record.
func WithPartition(partition int32) ReaderOption {
	return func(r *Reader) {
		r.partition = partition
	}
}

// WithStartOffset sets the offset assigned to the first record.
func WithStartOffset(offset int64) ReaderOption {
	return func(r *Reader) {
		r.offset = offset
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ReaderOption {
	return func(r *Reader) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReader creates a Reader over r. Every record gets the given topic.
func NewReader(r io.Reader, topic string, opts ...ReaderOption) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	rd := &Reader{
		scanner: scanner,
		topic:   topic,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(rd)
	}

	return rd
}

// Next returns the next record. It returns io.EOF when the input is exhausted
// and a *DecodeError for a malformed line; reading may continue after a
// DecodeError.
func (r *Reader) Next() (*Record, error) {
	for r.scanner.Scan() {
		r.line++

		line := bytes.TrimSpace(r.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		offset := r.offset
		r.offset++

		value, err := Decode(line)
		if err != nil {
			return nil, &DecodeError{Line: r.line, Offset: offset, Err: err}
		}

		return &Record{
			Topic:     r.topic,
			Partition: r.partition,
			Offset:    offset,
			Timestamp: r.now().UTC(),
			Value:     value,
		}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return nil, io.EOF
}

// Decode parses a single JSON value, keeping numbers as json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	return value, nil
}

// Encode renders a decoded value back to JSON.
func Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}
