//nolint:goconst // test file with repeated string literals
package playlist

import (
	"errors"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/llehouerou/shelf/internal/library"
)

func record(path, artist, album string, track int) *library.TrackRecord {
	return &library.TrackRecord{
		Path:      path,
		Extension: library.ExtensionOf(path),
		Tags:      library.Tags{Artist: artist, Album: album, TrackNumber: track},
	}
}

func withPaths(paths ...string) *Playlist {
	p := New()
	for _, path := range paths {
		p.Add(record(path, "", "", 0))
	}
	return p
}

func TestNew(t *testing.T) {
	p := New()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Entries() == nil {
		t.Error("Entries() should return empty slice, not nil")
	}
}

func TestPlaylist_Add(t *testing.T) {
	p := New()
	p.Add(record("/a.mp3", "", "", 0), nil, record("/b.mp3", "", "", 0))

	if got := p.Paths(); !slices.Equal(got, []string{"/a.mp3", "/b.mp3"}) {
		t.Errorf("Paths() = %v", got)
	}
	if p.Entry(0).Record == nil {
		t.Error("entry lost its record")
	}
}

func TestPlaylist_Remove(t *testing.T) {
	p := withPaths("/a.mp3", "/b.mp3", "/c.mp3")

	if err := p.Remove(1); err != nil {
		t.Fatalf("Remove(1) failed: %v", err)
	}
	if got := p.Paths(); !slices.Equal(got, []string{"/a.mp3", "/c.mp3"}) {
		t.Errorf("Paths() = %v", got)
	}

	for _, pos := range []int{-1, 2, 10} {
		if err := p.Remove(pos); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Remove(%d) = %v, want ErrOutOfRange", pos, err)
		}
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPlaylist_RemoveDirectory(t *testing.T) {
	p := withPaths(
		"/music/rock/a.mp3",
		"/music/jazz/b.mp3",
		"/music/rock/live/c.mp3",
		"/music/rockabilly/d.mp3",
		"/music/rock/e.flac",
	)
	before := p.Len()

	removed := p.RemoveDirectory("/music/rock/")

	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if p.Len() != before-removed {
		t.Errorf("Len() = %d, want %d", p.Len(), before-removed)
	}
	want := []string{"/music/jazz/b.mp3", "/music/rockabilly/d.mp3"}
	if got := p.Paths(); !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestPlaylist_AddDirectory(t *testing.T) {
	idx := library.Build([]string{"/music"}, []library.TrackRecord{
		*record("/music/b/2.mp3", "B", "Y", 2),
		*record("/music/b/1.flac", "B", "Y", 1),
		*record("/music/a/1.mp3", "A", "X", 1),
	}, time.Time{})

	ref, ok := idx.Lookup("/music")
	if !ok {
		t.Fatal("lookup failed")
	}

	p := New()
	n, err := p.AddDirectory(idx, ref, library.NewExtensionSet("mp3"))
	if err != nil {
		t.Fatalf("AddDirectory failed: %v", err)
	}
	if n != 2 {
		t.Errorf("added = %d, want 2", n)
	}
	if got := p.Paths(); !slices.Equal(got, []string{"/music/a/1.mp3", "/music/b/2.mp3"}) {
		t.Errorf("Paths() = %v", got)
	}

	if _, err := p.AddDirectory(idx, library.NodeRef{Tree: library.PathTree, ID: 999}, nil); !errors.Is(err, library.ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestPlaylist_SortIsStable(t *testing.T) {
	p := New()
	p.Add(
		record("/1.mp3", "B", "", 0),
		record("/2.mp3", "a", "", 0),
		record("/3.mp3", "", "", 0),
		record("/4.mp3", "b", "", 0),
		record("/5.mp3", "B", "", 0),
		record("/6.mp3", "A", "", 0),
	)

	p.Sort(SortArtist, false)
	want := []string{"/6.mp3", "/2.mp3", "/1.mp3", "/5.mp3", "/4.mp3", "/3.mp3"}
	if got := p.Paths(); !slices.Equal(got, want) {
		t.Errorf("ascending = %v, want %v", got, want)
	}

	p.Sort(SortArtist, true)
	want = []string{"/4.mp3", "/1.mp3", "/5.mp3", "/2.mp3", "/6.mp3", "/3.mp3"}
	if got := p.Paths(); !slices.Equal(got, want) {
		t.Errorf("descending = %v, want %v", got, want)
	}
}

func TestPlaylist_SortKeys(t *testing.T) {
	p := New()
	p.Add(
		record("/z/b.mp3", "", "", 2),
		record("/a/c.mp3", "", "", 0),
		record("/m/a.mp3", "", "", 1),
	)

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortPath, []string{"/a/c.mp3", "/m/a.mp3", "/z/b.mp3"}},
		{SortFile, []string{"/m/a.mp3", "/z/b.mp3", "/a/c.mp3"}},
		{SortDirectory, []string{"/a/c.mp3", "/m/a.mp3", "/z/b.mp3"}},
		{SortTrackNumber, []string{"/m/a.mp3", "/z/b.mp3", "/a/c.mp3"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			p.Sort(tt.key, false)
			if got := p.Paths(); !slices.Equal(got, tt.want) {
				t.Errorf("Paths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaylist_ShuffleSeeded(t *testing.T) {
	paths := []string{"/1", "/2", "/3", "/4", "/5", "/6", "/7", "/8"}

	a := withPaths(paths...)
	b := withPaths(paths...)
	a.Shuffle(42)
	b.Shuffle(42)
	if !slices.Equal(a.Paths(), b.Paths()) {
		t.Errorf("same seed gave %v and %v", a.Paths(), b.Paths())
	}

	for seed := range uint64(20) {
		p := withPaths(paths...)
		p.Shuffle(seed)
		got := p.Paths()
		slices.Sort(got)
		if !slices.Equal(got, paths) {
			t.Fatalf("seed %d: not a permutation: %v", seed, p.Paths())
		}
	}
}

func TestPlaylist_ShuffleRandomIsPermutation(t *testing.T) {
	paths := []string{"/1", "/2", "/3", "/4"}
	p := withPaths(paths...)
	p.ShuffleRandom()

	got := p.Paths()
	slices.Sort(got)
	if !slices.Equal(got, paths) {
		t.Errorf("not a permutation: %v", p.Paths())
	}
}

// Playlists expose no reorder operation.
func TestPlaylist_HasNoMove(t *testing.T) {
	typ := reflect.TypeOf(New())
	for _, name := range []string{"Move", "MoveUp", "MoveDown", "Swap", "Insert"} {
		if _, ok := typ.MethodByName(name); ok {
			t.Errorf("Playlist exposes %s", name)
		}
	}
}

func TestPlaylist_Duration(t *testing.T) {
	p := New()
	r := record("/a.mp3", "", "", 0)
	r.Tags.Duration = 90 * time.Second
	p.Add(r, record("/b.mp3", "", "", 0), r)

	if got := p.Duration(); got != 3*time.Minute {
		t.Errorf("Duration() = %v, want 3m", got)
	}
}

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{
		"Artist":       SortArtist,
		" path ":       SortPath,
		"track number": SortTrackNumber,
		"duration":     SortDuration,
	} {
		got, err := ParseSortKey(in)
		if err != nil || got != want {
			t.Errorf("ParseSortKey(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseSortKey("bitrate"); err == nil {
		t.Error("expected error")
	}
	if SortDuration.Next() != SortPath {
		t.Error("Next should wrap around")
	}
}
