package record

import (
	"errors"
	"fmt"
)

// ErrDecode is matched by every *DecodeError through errors.Is.
var ErrDecode = errors.New("record decode failed")

// DecodeError reports a line of input that is not valid JSON.
type DecodeError struct {
	Line   int
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
