// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"
	"strings"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryLoad Op = "load library index"
	OpLibraryScan Op = "scan library"
	OpLibrarySave Op = "save library index"

	// Root operations
	OpRootAdd    Op = "add library root"
	OpRootRemove Op = "remove library root"
	OpRootLoad   Op = "load library roots"

	// Playlist operations
	OpPlaylistAdd    Op = "add to playlist"
	OpPlaylistRemove Op = "remove from playlist"

	// Export operations
	OpExport     Op = "export playlist"
	OpPlayerOpen Op = "open player"

	// Preferences
	OpConfigLoad Op = "load preferences"
	OpConfigSave Op = "save preferences"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// FirstLine keeps only the first line of a multi-line message, noting how
// many lines were dropped. Combined scan errors are one line per file.
func FirstLine(msg string) string {
	first, rest, found := strings.Cut(msg, "\n")
	if !found {
		return first
	}
	return fmt.Sprintf("%s (+%d more)", first, strings.Count(rest, "\n")+1)
}
