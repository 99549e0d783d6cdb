package database

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get and update operations when no record
// exists under the requested key.
var ErrNotFound = errors.New("record not found")

// StoreOpenError reports that the underlying store could not be opened
// (missing permissions, unwritable path, corrupt file). It is fatal to the
// storage layer and is not retried internally.
type StoreOpenError struct {
	Path string
	Err  error
}

func (e *StoreOpenError) Error() string {
	return fmt.Sprintf("failed to open store at %s: %v", e.Path, e.Err)
}

func (e *StoreOpenError) Unwrap() error { return e.Err }

// RecordOperationError wraps a single failed collection operation with the
// underlying storage error. Callers decide whether to retry.
type RecordOperationError struct {
	Collection string
	Op         string
	Err        error
}

func (e *RecordOperationError) Error() string {
	return fmt.Sprintf("%s on %s failed: %v", e.Op, e.Collection, e.Err)
}

func (e *RecordOperationError) Unwrap() error { return e.Err }
