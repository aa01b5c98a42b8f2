// Package app contains the terminal client: a library browser beside the
// playlist being assembled.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/watch"
)

// LibraryScanMessage is implemented by messages related to library scanning.
type LibraryScanMessage interface {
	tea.Msg
	libraryScanMessage()
}

// ScanProgressMsg wraps library scan progress updates.
type ScanProgressMsg library.ScanProgress

func (ScanProgressMsg) libraryScanMessage() {}

// ScanFinishedMsg is sent when Rescan returns.
type ScanFinishedMsg struct {
	Report *library.ScanReport
	Err    error
}

func (ScanFinishedMsg) libraryScanMessage() {}

// LibraryChangedMsg is sent when the watcher sees files change under a root.
type LibraryChangedMsg struct {
	Change watch.Change
	source <-chan watch.Change
}

// ExportedMsg reports the outcome of an export.
type ExportedMsg struct {
	Path  string
	Count int
	Err   error
}

// PlayerStartedMsg reports the outcome of handing an exported playlist to
// the external player.
type PlayerStartedMsg struct {
	Path string
	Err  error
}
