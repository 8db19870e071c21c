package store

import "fmt"

// StorageError represents persistence read/write or parse failures. These are
// always recovered locally (empty/default state) and never surfaced to the
// user beyond a log line.
type StorageError struct {
	Key string // storage key involved
	Op  string // "get", "set", "delete", "parse"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError represents an operation rejected before any state mutation:
// missing credential, blank input, deleting the last remaining chat.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
