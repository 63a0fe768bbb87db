package mapping

import (
	"errors"

	"attr-mapper/internal/diagnostic"
)

// ErrInvalidDefinition is matched by every *DefinitionError through errors.Is.
var ErrInvalidDefinition = errors.New("invalid mapping definition")

// DefinitionError reports a malformed or mistyped mapping definition.
// Either Err holds the underlying parse failure, or Diagnostics holds every
// structural violation found during validation.
type DefinitionError struct {
	Diagnostics *diagnostic.Diagnostics
	Err         error
}

func (e *DefinitionError) Error() string {
	if e.Err != nil {
		return ErrInvalidDefinition.Error() + ": " + e.Err.Error()
	}

	if e.Diagnostics != nil && e.Diagnostics.HasErrors() {
		return ErrInvalidDefinition.Error() + ": " + e.Diagnostics.Error().Error()
	}

	return ErrInvalidDefinition.Error()
}

// Unwrap returns the underlying parse error, if any.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidDefinition) hold for any DefinitionError.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}
