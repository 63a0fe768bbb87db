package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"attr-mapper/internal/record"
)

// Sink receives the attributes extracted from each record.
type Sink interface {
	Emit(ctx context.Context, rec *record.Record, attrs map[string]any) error
}

// JSONLinesSink writes one JSON object per emitted record.
type JSONLinesSink struct {
	enc *json.Encoder
}

// NewJSONLinesSink creates a sink writing to w.
func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return &JSONLinesSink{enc: enc}
}

// Emit writes attrs as a single line.
func (s *JSONLinesSink) Emit(_ context.Context, rec *record.Record, attrs map[string]any) error {
	if err := s.enc.Encode(attrs); err != nil {
		return fmt.Errorf("failed to write event for %s: %w", rec.Origin(), err)
	}

	return nil
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, rec *record.Record, attrs map[string]any) error

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, rec *record.Record, attrs map[string]any) error {
	return f(ctx, rec, attrs)
}
