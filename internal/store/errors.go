package store

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is returned (wrapped in a ValidationError) when an add is
// attempted with a blank title.
var ErrEmptyTitle = errors.New("title is empty")

// ValidationError means the request was declined before touching storage.
// The collection is unchanged and no observer is notified.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "validation: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceError means the repository failed to commit a mutation.
// The collection stays at its last committed state; the caller may retry.
type PersistenceError struct {
	Op  string // add | delete | load | close
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
