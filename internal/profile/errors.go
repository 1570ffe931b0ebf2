package profile

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by Remove* for an index outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// FieldError is a client-side validation failure. Message is meant to be
// shown to the user as-is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func fieldErr(field, msg string) *FieldError {
	return &FieldError{Field: field, Message: msg}
}

func indexErr(list string, i, n int) error {
	return fmt.Errorf("remove %s %d of %d: %w", list, i, n, ErrIndexOutOfRange)
}
