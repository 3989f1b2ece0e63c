package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidFlavor     = errors.New("flavor is invalid")
	ErrInvalidSize       = errors.New("size is invalid")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("status transition is not allowed")
)

var validationSentinels = []error{
	ErrMissingField,
	ErrInvalidQuantity,
	ErrInvalidFlavor,
	ErrInvalidSize,
	ErrInvalidStatus,
	ErrInvalidTransition,
}

// ValidationSentinel returns the validation error whose message is msg, so a
// failure decoded from its text still matches with errors.Is.
func ValidationSentinel(msg string) error {
	for _, sentinel := range validationSentinels {
		if sentinel.Error() == msg {
			return sentinel
		}
	}
	return errors.New(msg)
}

// ValidationError pins a rejected input to the field that caused it.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missingField(field string) error {
	return &ValidationError{Field: field, Err: ErrMissingField}
}
