// Package playlist holds the ordered list of tracks the user is building,
// independent of the tree the tracks were picked from.
package playlist

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/shelf/internal/library"
)

// ErrOutOfRange is returned for a position outside the playlist.
var ErrOutOfRange = errors.New("position out of range")

// Entry is one playlist position. Record points into the index the entry
// was added from and is never modified.
type Entry struct {
	Path   string
	Record *library.TrackRecord
}

// Tags returns the tags of the entry, or zero tags when it has no record.
func (e Entry) Tags() library.Tags {
	if e.Record == nil {
		return library.Tags{}
	}
	return e.Record.Tags
}

// Playlist holds an ordered collection of entries. It is not safe for
// concurrent use.
type Playlist struct {
	entries []Entry
}

// New creates a new empty playlist.
func New() *Playlist {
	return &Playlist{
		entries: make([]Entry, 0),
	}
}

// Add appends records to the playlist.
func (p *Playlist) Add(records ...*library.TrackRecord) {
	for _, r := range records {
		if r == nil {
			continue
		}
		p.entries = append(p.entries, Entry{Path: r.Path, Record: r})
	}
}

// AddDirectory appends every record below ref whose extension is in filter,
// in tree order, and returns how many were added. ref may name a node of
// either tree.
func (p *Playlist) AddDirectory(idx *library.Index, ref library.NodeRef, filter library.ExtensionSet) (int, error) {
	records, err := idx.RecordsUnder(ref, filter)
	if err != nil {
		return 0, err
	}
	p.Add(records...)
	return len(records), nil
}

// Remove removes the entry at pos; later entries shift down by one.
func (p *Playlist) Remove(pos int) error {
	if pos < 0 || pos >= len(p.entries) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, pos, len(p.entries))
	}
	p.entries = append(p.entries[:pos], p.entries[pos+1:]...)
	return nil
}

// RemoveDirectory removes every entry whose path lies below dir and returns
// how many were removed. Remaining entries keep their relative order.
func (p *Playlist) RemoveDirectory(dir string) int {
	dir = filepath.Clean(dir)
	prefix := dir + string(filepath.Separator)
	if dir == string(filepath.Separator) {
		prefix = dir
	}

	kept := p.entries[:0]
	for _, e := range p.entries {
		if strings.HasPrefix(e.Path, prefix) {
			continue
		}
		kept = append(kept, e)
	}
	removed := len(p.entries) - len(kept)
	clear(p.entries[len(kept):])
	p.entries = kept
	return removed
}

// Clear removes all entries.
func (p *Playlist) Clear() {
	clear(p.entries)
	p.entries = p.entries[:0]
}

// Entries returns a copy of all entries.
func (p *Playlist) Entries() []Entry {
	result := make([]Entry, len(p.entries))
	copy(result, p.entries)
	return result
}

// Entry returns the entry at pos, or nil if out of bounds.
func (p *Playlist) Entry(pos int) *Entry {
	if pos < 0 || pos >= len(p.entries) {
		return nil
	}
	return &p.entries[pos]
}

// Paths returns the entry paths in playlist order.
func (p *Playlist) Paths() []string {
	paths := make([]string, len(p.entries))
	for i, e := range p.entries {
		paths[i] = e.Path
	}
	return paths
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	return len(p.entries)
}

// Duration returns the summed duration of entries with a known duration.
func (p *Playlist) Duration() time.Duration {
	var d time.Duration
	for _, e := range p.entries {
		d += e.Tags().Duration
	}
	return d
}
