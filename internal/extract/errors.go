package extract

import (
	"errors"
	"fmt"
)

// ErrRecordShape is matched by every *RecordShapeError through errors.Is.
var ErrRecordShape = errors.New("record value is not a mapping")

// RecordShapeError reports a record whose top-level value cannot be traversed.
type RecordShapeError struct {
	// Type is the Go type of the offending value, or "nil".
	Type string
}

func newRecordShapeError(value any) *RecordShapeError {
	if value == nil {
		return &RecordShapeError{Type: "nil"}
	}

	return &RecordShapeError{Type: fmt.Sprintf("%T", value)}
}

func (e *RecordShapeError) Error() string {
	return fmt.Sprintf("%s: got %s", ErrRecordShape, e.Type)
}

func (e *RecordShapeError) Is(target error) bool {
	return target == ErrRecordShape
}
