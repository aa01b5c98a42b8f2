// Package library discovers audio files under a set of roots, extracts
// their metadata and builds the immutable index that the rest of shelf
// browses: a path tree mirroring the filesystem and a tag tree grouped by
// Genre, Artist, Album and Track.
package library

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// RecordID identifies a TrackRecord inside an Index.
type RecordID uint32

// Tags holds the subset of metadata shelf groups and sorts by.
// Empty strings and zero numbers mean the value is missing.
type Tags struct {
	Genre       string        `json:"genre,omitempty"`
	Artist      string        `json:"artist,omitempty"`
	Album       string        `json:"album,omitempty"`
	Title       string        `json:"title,omitempty"`
	TrackNumber int           `json:"track,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
}

// IsZero reports whether no tag value is present.
func (t Tags) IsZero() bool {
	return t == Tags{}
}

// TrackRecord is one discovered audio file and the tags read from it.
type TrackRecord struct {
	Path      string `json:"path"`
	Extension string `json:"ext"`
	Tags      Tags   `json:"tags"`
}

// Name returns the file name of the record.
func (r *TrackRecord) Name() string {
	return filepath.Base(r.Path)
}

// Dir returns the directory containing the record.
func (r *TrackRecord) Dir() string {
	return filepath.Dir(r.Path)
}

// ExtensionOf returns the lowercase extension of path without the leading dot.
func ExtensionOf(path string) string {
	return normalizeExtension(filepath.Ext(path))
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// ExtensionSet is a set of lowercase extensions without leading dots.
// A nil set matches every extension; a non-nil empty set matches none.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from extensions such as "mp3", ".FLAC" or " ogg".
// Blank entries are ignored.
func NewExtensionSet(exts ...string) ExtensionSet {
	s := make(ExtensionSet, len(exts))
	for _, e := range exts {
		if n := normalizeExtension(e); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Contains reports whether ext is in the set.
func (s ExtensionSet) Contains(ext string) bool {
	if s == nil {
		return true
	}
	_, ok := s[normalizeExtension(ext)]
	return ok
}

// MatchPath reports whether the extension of path is in the set.
func (s ExtensionSet) MatchPath(path string) bool {
	return s.Contains(filepath.Ext(path))
}

// Overlaps reports whether any of exts is in the set.
// exts must already be normalized, as stored on index nodes. A nil set
// overlaps anything, including an empty list.
func (s ExtensionSet) Overlaps(exts []string) bool {
	if s == nil {
		return true
	}
	for _, e := range exts {
		if _, ok := s[e]; ok {
			return true
		}
	}
	return false
}

// Slice returns the extensions in sorted order.
func (s ExtensionSet) Slice() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Toggle adds ext when absent and removes it when present.
// It returns the resulting set, allocating one when s is nil.
func (s ExtensionSet) Toggle(ext string) ExtensionSet {
	ext = normalizeExtension(ext)
	if s == nil {
		s = ExtensionSet{}
	}
	if _, ok := s[ext]; ok {
		delete(s, ext)
	} else {
		s[ext] = struct{}{}
	}
	return s
}
