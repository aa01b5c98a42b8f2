// Package tags reads embedded tag metadata from music files.
// Each supported format is read by exactly one reader chosen from the file
// extension, so a file costs a single open and parse.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// File extensions known to the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtWAV  = ".wav"
	ExtAIFF = ".aiff"
	ExtWV   = ".wv"
	ExtAPE  = ".ape"
)

// DefaultExtensions lists the audio extensions indexed when no allow-list is configured.
var DefaultExtensions = []string{
	ExtMP3, ExtFLAC, ExtOGG, ExtOGA, ExtOPUS, ExtM4A, ExtMP4, ExtWAV, ExtAIFF, ExtWV, ExtAPE,
}

// Tag contains the tag metadata the index cares about.
// Empty strings and zero numbers mean the field was not present.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string

	TrackNumber int
	TotalTracks int
	DiscNumber  int

	Date string // YYYY or YYYY-MM-DD

	// Duration is only filled when the reader gets it for free from the
	// same parse (FLAC STREAMINFO, ID3 TLEN).
	Duration time.Duration
}

// Year derives the year from the Date field.
// Returns 0 if Date is empty or cannot be parsed.
func (t *Tag) Year() int {
	if t.Date == "" {
		return 0
	}
	year := t.Date
	if len(year) > 4 {
		year = year[:4]
	}
	y, _ := strconv.Atoi(year)
	return y
}

// IsEmpty reports whether none of the indexed fields were found.
func (t *Tag) IsEmpty() bool {
	return t.Title == "" && t.Artist == "" && t.AlbumArtist == "" &&
		t.Album == "" && t.Genre == "" && t.TrackNumber == 0
}

// sanitize trims whitespace and NUL padding left by some taggers.
func (t *Tag) sanitize() {
	t.Title = clean(t.Title)
	t.Artist = clean(t.Artist)
	t.AlbumArtist = clean(t.AlbumArtist)
	t.Album = clean(t.Album)
	t.Genre = clean(t.Genre)
	t.Date = clean(t.Date)
	if t.TrackNumber < 0 {
		t.TrackNumber = 0
	}
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}

// Ext returns the lowercase extension of path including the leading dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsMusicFile returns true if the path has one of the default music extensions.
func IsMusicFile(path string) bool {
	ext := Ext(path)
	for _, e := range DefaultExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M" format.
func parseNumberPair(s string) (num, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	if idx := strings.Index(s, "/"); idx >= 0 {
		num, _ = strconv.Atoi(strings.TrimSpace(s[:idx]))
		total, _ = strconv.Atoi(strings.TrimSpace(s[idx+1:]))
		return num, total
	}
	num, _ = strconv.Atoi(s)
	return num, 0
}

// yearToDate converts a year integer to a date string.
// Returns empty string for year 0.
func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
