package model

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel kind wrapped by every ValidationError.
var ErrValidation = errors.New("domain validation failed")

// ValidationError reports malformed or inconsistent input data. It is fatal
// to the run and surfaced before any solver state is built.
type ValidationError struct {
	Entity string
	Key    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Entity, e.Key, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationErr(entity string, key int, format string, args ...interface{}) error {
	return &ValidationError{
		Entity: entity,
		Key:    key,
		Reason: fmt.Sprintf(format, args...),
	}
}
