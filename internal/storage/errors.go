package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a read or update referencing an id that is not in the
// collection. It is a value to test with errors.Is, not control flow for
// the UI layer.
var ErrNotFound = errors.New("record not found")

// ErrBadPage reports a page query with a non-positive page or page size.
// This is a caller bug, not a storage failure.
var ErrBadPage = errors.New("page and page size must be positive")

// StorageError wraps a failure of the underlying database. Treated as
// transient: the whole operation is safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
