package types

import (
	"errors"
	"fmt"
)

// ErrStaleResponse marks a response whose sequence is no longer the latest issued.
var ErrStaleResponse = errors.New("stale response")

// ValidationError is returned when a value falls outside its allowed domain.
// The rejected value never replaces the prior state.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

func invalid(field string, value any) error {
	return &ValidationError{Field: field, Value: value}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
