package export

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/shelf/internal/playlist"
)

var (
	// ErrEmpty is returned when exporting a playlist without entries.
	// No file is written.
	ErrEmpty = errors.New("playlist is empty")
	// ErrIO matches failures to write the destination.
	ErrIO = errors.New("export i/o failed")
)

// Error describes a failed export.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// Options tune the document header.
type Options struct {
	Title   string
	Creator string
}

// Export writes entries, in order, as an XSPF document at dest. The document
// is written to a temporary file beside dest and renamed over it, so dest is
// either left untouched or fully replaced.
func Export(entries []playlist.Entry, dest string, opts Options) error {
	if len(entries) == 0 {
		return ErrEmpty
	}

	doc := xspfPlaylist{
		Version:   "1",
		Namespace: xspfNamespace,
		Title:     opts.Title,
		Creator:   opts.Creator,
		Tracks:    make([]xspfTrack, 0, len(entries)),
	}
	for _, e := range entries {
		t, err := toTrack(e)
		if err != nil {
			return &Error{Op: "resolve", Path: e.Path, Err: err}
		}
		doc.Tracks = append(doc.Tracks, t)
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return &Error{Op: "create", Path: dest, Err: err}
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	w := bufio.NewWriter(tmp)
	if err := encode(w, doc); err != nil {
		tmp.Close()
		return &Error{Op: "write", Path: dest, Err: err}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return &Error{Op: "write", Path: dest, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &Error{Op: "sync", Path: dest, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "close", Path: dest, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return &Error{Op: "chmod", Path: dest, Err: err}
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return &Error{Op: "rename", Path: dest, Err: err}
	}
	return nil
}

// ExportTemp writes entries into the shelf cache directory and returns the
// path of the document, for handing to an external player.
func ExportTemp(entries []playlist.Entry, opts Options) (string, error) {
	dest, err := xdg.CacheFile(filepath.Join("shelf", "current.xspf"))
	if err != nil {
		return "", &Error{Op: "create", Path: "current.xspf", Err: err}
	}
	if err := Export(entries, dest, opts); err != nil {
		return "", err
	}
	return dest, nil
}

// DefaultFileName suggests a file name for entries: "Artist - Album.xspf"
// when every entry shares them, otherwise a dated name.
func DefaultFileName(entries []playlist.Entry, now time.Time) string {
	artist, album := commonTag(entries, func(e playlist.Entry) string { return e.Tags().Artist }),
		commonTag(entries, func(e playlist.Entry) string { return e.Tags().Album })

	var name string
	switch {
	case artist != "" && album != "":
		name = artist + " - " + album
	case artist != "":
		name = artist
	case album != "":
		name = album
	default:
		name = "playlist-" + now.Format("2006-01-02-150405")
	}
	return sanitizeFilename(name) + ".xspf"
}

func commonTag(entries []playlist.Entry, value func(playlist.Entry) string) string {
	if len(entries) == 0 {
		return ""
	}
	v := value(entries[0])
	for _, e := range entries[1:] {
		if value(e) != v {
			return ""
		}
	}
	return v
}

// sanitizeFilename replaces characters not allowed in file names on common
// filesystems and bounds the length.
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	result := strings.TrimSpace(replacer.Replace(s))
	if len(result) > 200 {
		result = strings.ToValidUTF8(result[:200], "")
	}
	return result
}
