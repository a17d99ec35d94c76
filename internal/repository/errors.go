package repository

import (
	"errors"
	"fmt"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already
// registered. It is a rejection, not a persistence failure.
var ErrDuplicateEmail = errors.New("email already registered")

// PersistenceError wraps any failure coming back from the database layer.
// Not-found and no-match conditions are never reported this way; those are
// plain non-error results.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
