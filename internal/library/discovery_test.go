package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func walkAll(ctx context.Context, roots []string, exts ExtensionSet) (paths []string, warnings []error) {
	for c, err := range Walk(ctx, roots, exts) {
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		paths = append(paths, c.Path)
	}
	slices.Sort(paths)
	return paths, warnings
}

func TestWalk_FindsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp3"))
	touch(t, filepath.Join(dir, "sub", "B.FLAC"))
	touch(t, filepath.Join(dir, "sub", "cover.jpg"))
	touch(t, filepath.Join(dir, ".hidden", "c.mp3"))
	touch(t, filepath.Join(dir, "sub", ".d.mp3"))

	paths, warnings := walkAll(context.Background(), []string{dir}, NewExtensionSet("mp3", "flac"))

	want := []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "sub", "B.FLAC"),
	}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestWalk_SymlinkCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a", "song.mp3"))
	if err := os.Symlink(dir, filepath.Join(dir, "a", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	paths, warnings := walkAll(context.Background(), []string{dir}, NewExtensionSet("mp3"))

	if want := []string{filepath.Join(dir, "a", "song.mp3")}; !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], errAlreadyVisited) {
		t.Errorf("warnings = %v, want one already-visited warning", warnings)
	}
}

func TestWalk_FollowsSymlinkedDirectory(t *testing.T) {
	outside := t.TempDir()
	touch(t, filepath.Join(outside, "x.ogg"))

	root := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	paths, _ := walkAll(context.Background(), []string{root}, NewExtensionSet("ogg"))
	if want := []string{filepath.Join(root, "linked", "x.ogg")}; !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestWalk_DanglingSymlinkWarns(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "ok.mp3"))
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken.mp3")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	paths, warnings := walkAll(context.Background(), []string{dir}, NewExtensionSet("mp3"))

	if len(paths) != 1 {
		t.Errorf("paths = %v", paths)
	}
	var ww *WalkWarning
	if len(warnings) != 1 || !errors.As(warnings[0], &ww) {
		t.Fatalf("warnings = %v", warnings)
	}
	if ww.Path != filepath.Join(dir, "broken.mp3") {
		t.Errorf("warning path = %s", ww.Path)
	}
}

func TestWalk_MissingRootWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp3"))

	paths, warnings := walkAll(context.Background(), []string{filepath.Join(dir, "nope"), dir}, NewExtensionSet("mp3"))

	if len(paths) != 1 {
		t.Errorf("paths = %v", paths)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		touch(t, filepath.Join(dir, n))
	}

	n := 0
	for _, err := range Walk(context.Background(), []string{dir}, nil) {
		if err != nil {
			t.Fatal(err)
		}
		n++
		break
	}
	if n != 1 {
		t.Errorf("n = %d", n)
	}
}

func TestWalk_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp3"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, _ := walkAll(ctx, []string{dir}, nil)
	if len(paths) != 0 {
		t.Errorf("paths = %v", paths)
	}
}
