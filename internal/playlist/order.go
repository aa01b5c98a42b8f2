package playlist

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
)

// SortKey selects the field Sort orders by.
type SortKey string

const (
	SortPath        SortKey = "path"
	SortDirectory   SortKey = "directory"
	SortFile        SortKey = "file"
	SortArtist      SortKey = "artist"
	SortAlbum       SortKey = "album"
	SortTitle       SortKey = "title"
	SortGenre       SortKey = "genre"
	SortTrackNumber SortKey = "track"
	SortDuration    SortKey = "duration"
)

// SortKeys lists every key in the order the client cycles through them.
var SortKeys = []SortKey{
	SortPath, SortDirectory, SortFile, SortArtist, SortAlbum,
	SortTitle, SortGenre, SortTrackNumber, SortDuration,
}

// ParseSortKey parses a key name, case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "track number" || k == "tracknumber" {
		return SortTrackNumber, nil
	}
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Next returns the key following k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// Sort orders the playlist by key. The sort is stable: entries with equal
// keys keep their relative order. Entries missing the value sort last in
// both directions.
func (p *Playlist) Sort(key SortKey, descending bool) {
	compare := comparator(key)
	slices.SortStableFunc(p.entries, func(a, b Entry) int {
		c, bothPresent := compare(a, b)
		if bothPresent && descending {
			return -c
		}
		return c
	})
}

// comparator returns a function comparing two entries by key. The boolean
// is false when at least one side lacks the value; the result then places
// the missing side last and must not be reversed.
func comparator(key SortKey) func(a, b Entry) (int, bool) {
	switch key {
	case SortDirectory:
		return compareStrings(func(e Entry) string { return filepath.Dir(e.Path) })
	case SortFile:
		return compareStrings(func(e Entry) string { return filepath.Base(e.Path) })
	case SortArtist:
		return compareStrings(func(e Entry) string { return e.Tags().Artist })
	case SortAlbum:
		return compareStrings(func(e Entry) string { return e.Tags().Album })
	case SortTitle:
		return compareStrings(func(e Entry) string { return e.Tags().Title })
	case SortGenre:
		return compareStrings(func(e Entry) string { return e.Tags().Genre })
	case SortTrackNumber:
		return compareNumbers(func(e Entry) int64 { return int64(e.Tags().TrackNumber) })
	case SortDuration:
		return compareNumbers(func(e Entry) int64 { return int64(e.Tags().Duration) })
	default:
		return compareStrings(func(e Entry) string { return e.Path })
	}
}

func compareStrings(value func(Entry) string) func(a, b Entry) (int, bool) {
	return func(a, b Entry) (int, bool) {
		va, vb := value(a), value(b)
		if c, ok := missingLast(va == "", vb == ""); !ok {
			return c, false
		}
		if c := strings.Compare(strings.ToLower(va), strings.ToLower(vb)); c != 0 {
			return c, true
		}
		return strings.Compare(va, vb), true
	}
}

func compareNumbers(value func(Entry) int64) func(a, b Entry) (int, bool) {
	return func(a, b Entry) (int, bool) {
		va, vb := value(a), value(b)
		if c, ok := missingLast(va == 0, vb == 0); !ok {
			return c, false
		}
		return cmp.Compare(va, vb), true
	}
}

// missingLast orders present values before missing ones. ok is true when
// both values are present.
func missingLast(aMissing, bMissing bool) (c int, ok bool) {
	switch {
	case aMissing && bMissing:
		return 0, false
	case aMissing:
		return 1, false
	case bMissing:
		return -1, false
	}
	return 0, true
}

// Shuffle permutes the entries with a generator seeded from seed. The same
// seed always yields the same order for the same playlist.
func (p *Playlist) Shuffle(seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(p.entries), func(i, j int) {
		p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
	})
}

// ShuffleRandom permutes the entries with the process-wide generator.
func (p *Playlist) ShuffleRandom() {
	rand.Shuffle(len(p.entries), func(i, j int) {
		p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
	})
}
