package state

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt matches errors for stored data that cannot be decoded.
	ErrCorrupt = errors.New("stored data corrupt")
	// ErrIO matches errors from the database or the filesystem.
	ErrIO = errors.New("state i/o failed")
)

// Error describes a failed state operation.
type Error struct {
	Kind error // ErrCorrupt or ErrIO
	Op   string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("state %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("state %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Corrupt reports whether the stored data is unreadable and should be
// rebuilt.
func (e *Error) Corrupt() bool {
	return e.Kind == ErrCorrupt
}

func corruptError(op, key string, err error) error {
	return &Error{Kind: ErrCorrupt, Op: op, Key: key, Err: err}
}

func ioError(op, key string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Key: key, Err: err}
}
