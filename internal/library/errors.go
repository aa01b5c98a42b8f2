package library

import (
	"errors"
	"fmt"
)

var (
	// ErrScanInProgress is returned by Rescan while another scan is running.
	ErrScanInProgress = errors.New("scan already in progress")

	// ErrNodeNotFound is returned for a NodeRef that does not name a node
	// of the index it is used with.
	ErrNodeNotFound = errors.New("node not found")

	errAlreadyVisited = errors.New("directory already visited")
)

// WalkWarning is a non-fatal problem met while walking a root: an
// unreadable directory, a dangling symlink or a directory reached twice.
type WalkWarning struct {
	Path string
	Err  error
}

func (w *WalkWarning) Error() string {
	return fmt.Sprintf("walk %s: %v", w.Path, w.Err)
}

func (w *WalkWarning) Unwrap() error { return w.Err }

// ExtractionFailure records a file whose tags could not be read.
// The file is still indexed, with empty tags.
type ExtractionFailure struct {
	Path string
	Err  error
}

func (f *ExtractionFailure) Error() string {
	return fmt.Sprintf("extract %s: %v", f.Path, f.Err)
}

func (f *ExtractionFailure) Unwrap() error { return f.Err }

// corrupter is implemented by store errors that describe unreadable
// persisted data.
type corrupter interface {
	Corrupt() bool
}

// IsCorrupt reports whether err describes a persisted index that cannot be
// decoded and should be rebuilt rather than surfaced.
func IsCorrupt(err error) bool {
	var c corrupter
	return errors.As(err, &c) && c.Corrupt()
}
