package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shelf/internal/config"
	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/playlist"
	"github.com/llehouerou/shelf/internal/state"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

var testFiles = map[string]library.Tags{
	"rock/a.mp3":  {Genre: "Rock", Artist: "Ann", Album: "X", Title: "One", TrackNumber: 1},
	"rock/b.flac": {Genre: "Rock", Artist: "Ann", Album: "X", Title: "Two", TrackNumber: 2},
	"jazz/c.mp3":  {Genre: "Jazz", Artist: "Bob", Album: "Y", Title: "Three"},
}

type testEnv struct {
	root  string
	store *state.Mock
	lib   *library.Library
	cfg   *config.Config
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	for rel := range testFiles {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	extract := func(path string) (library.TrackRecord, error) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return library.TrackRecord{}, err
		}
		return library.TrackRecord{
			Path:      path,
			Extension: library.ExtensionOf(path),
			Tags:      testFiles[filepath.ToSlash(rel)],
		}, nil
	}

	store := state.NewMockIn(t.TempDir())
	lib := library.New(store, library.Options{
		Extensions: library.NewExtensionSet("mp3", "flac"),
		Extract:    extract,
		Logger:     quietLogger(),
	})
	return &testEnv{
		root:  root,
		store: store,
		lib:   lib,
		cfg:   &config.Config{Extensions: []string{"mp3", "flac"}, ExportDir: t.TempDir()},
	}
}

func (e *testEnv) scan(t *testing.T) {
	t.Helper()
	_, err := e.lib.Rescan(context.Background(), []string{e.root}, nil)
	require.NoError(t, err)
}

func (e *testEnv) model(t *testing.T) Model {
	t.Helper()
	m, err := New(Deps{
		Config:  e.cfg,
		State:   e.store,
		Library: e.lib,
		Logger:  quietLogger(),
		Roots:   []string{e.root},
		Now:     func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func newTestModel(t *testing.T) (Model, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	env.scan(t)
	return env.model(t), env
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, key(k))
	}
	return m
}

func (e *testEnv) path(rel string) string {
	return filepath.Join(e.root, filepath.FromSlash(rel))
}

func TestApp_AddFromBrowser(t *testing.T) {
	m, env := newTestModel(t)

	// root -> [jazz, rock]
	m = press(t, m, "enter")
	assert.Equal(t, env.root, m.browser.CurrentPath())

	m = press(t, m, "a")
	assert.Equal(t, []string{env.path("jazz/c.mp3")}, m.playlist.Paths())

	m = press(t, m, "j", "enter", "a")
	assert.Equal(t, []string{env.path("jazz/c.mp3"), env.path("rock/a.mp3")}, m.playlist.Paths())

	m = press(t, m, "h", "h", "A")
	assert.Equal(t, 5, m.playlist.Len(), "A adds everything listed")
}

func TestApp_PlaylistEditing(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, "A", "tab")
	require.Equal(t, 3, m.playlist.Len())

	m = press(t, m, "d")
	assert.Equal(t, []string{env.path("rock/a.mp3"), env.path("rock/b.flac")}, m.playlist.Paths())

	m = press(t, m, "D")
	assert.Equal(t, 0, m.playlist.Len())
	assert.Contains(t, m.status, "Removed 2 entries")

	m = press(t, m, "d")
	assert.True(t, m.statusErr, "removing from an empty playlist reports an error")

	m = press(t, m, "tab", "A", "tab", "c")
	assert.Equal(t, 0, m.playlist.Len())
}

func TestApp_SortAndShuffle(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, "A", "tab")

	m = press(t, m, "S")
	assert.True(t, m.sortDesc)
	want := []string{env.path("rock/b.flac"), env.path("rock/a.mp3"), env.path("jazz/c.mp3")}
	assert.Equal(t, want, m.playlist.Paths())

	m = press(t, m, "s")
	assert.Equal(t, playlist.SortDirectory, m.sortKey)

	m = press(t, m, "x")
	got := m.playlist.Paths()
	slices.Sort(got)
	assert.Equal(t, []string{env.path("jazz/c.mp3"), env.path("rock/a.mp3"), env.path("rock/b.flac")}, got)
}

func TestApp_ToggleTree(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "t")
	assert.Equal(t, library.TagTree, m.tree)
	assert.Equal(t, "Genres", m.browser.CurrentPath())

	var names []string
	for _, n := range m.browser.CurrentItems() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Jazz", "Rock"}, names)

	m = press(t, m, "t")
	assert.Equal(t, library.PathTree, m.tree)
}

func TestApp_ExtensionFilter(t *testing.T) {
	m, env := newTestModel(t)
	require.Equal(t, []string{"flac", "mp3"}, m.exts)

	m = press(t, m, "1")
	assert.False(t, m.filter.Contains("flac"))
	assert.True(t, m.filter.Contains("mp3"))

	m = press(t, m, "A")
	assert.Equal(t, []string{env.path("jazz/c.mp3"), env.path("rock/a.mp3")}, m.playlist.Paths())

	m = press(t, m, "0")
	assert.Nil(t, m.filter)

	m = press(t, m, "9")
	assert.Nil(t, m.filter, "toggle beyond the extension list is ignored")
}

func TestApp_Export(t *testing.T) {
	m, env := newTestModel(t)

	m = press(t, m, "tab", "e")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "playlist is empty")
	assert.Nil(t, m.prompt)

	m = press(t, m, "tab", "A", "tab", "e")
	require.NotNil(t, m.prompt)
	dest := m.prompt.input.Value()
	assert.Equal(t, filepath.Join(env.cfg.ExportDir, "playlist-2026-05-01-120000.xspf"), dest)

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.False(t, m.statusErr, m.status)
	assert.Contains(t, m.status, "Exported 3 tracks")
	assert.FileExists(t, dest)
}

func TestApp_ExportPromptCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "A", "tab", "e")
	require.NotNil(t, m.prompt)

	m = press(t, m, "esc")
	assert.Nil(t, m.prompt)
	assert.Equal(t, 3, m.playlist.Len())
}

func TestApp_PlayWithoutPlayer(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	xdg.Reload()

	m, _ := newTestModel(t)
	m = press(t, m, "A", "tab")

	next, cmd := m.Update(key("p"))
	m = next.(Model)
	require.NotNil(t, cmd)
	msg, ok := cmd().(PlayerStartedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.FileExists(t, msg.Path)

	m = send(t, m, msg)
	assert.Contains(t, m.status, msg.Path)
}

func TestApp_ScanFlow(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)
	assert.True(t, m.needsScan)
	assert.Equal(t, 0, m.src.Index().Len())

	next, cmd := m.Update(key("r"))
	m = next.(Model)
	require.True(t, m.scanning)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	m = press(t, m, "r")
	assert.Contains(t, m.status, library.ErrScanInProgress.Error())

	finished, ok := batch[0]().(ScanFinishedMsg)
	require.True(t, ok)
	require.NoError(t, finished.Err)

	m = send(t, m, finished)
	assert.False(t, m.scanning)
	assert.Equal(t, 3, m.src.Index().Len())
	assert.Contains(t, m.status, "Indexed 3 files")
}

func TestApp_RootsChangedDuringScanRescans(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)

	next, _ := m.Update(key("r"))
	m = next.(Model)
	require.True(t, m.scanning)

	extra := t.TempDir()
	next, _ = m.setRoots(library.NormalizeRoots([]string{env.root, extra}))
	m = next.(Model)
	assert.True(t, m.rescanNext)
	assert.True(t, m.stale)
	assert.False(t, m.statusErr, "no scan-in-progress error: %s", m.status)

	next, cmd := m.Update(ScanFinishedMsg{Err: context.Canceled})
	m = next.(Model)
	assert.False(t, m.rescanNext)
	assert.True(t, m.scanning, "rescan of the new roots starts")
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	finished, ok := batch[0]().(ScanFinishedMsg)
	require.True(t, ok)
	require.NoError(t, finished.Err)
	assert.ElementsMatch(t, library.NormalizeRoots([]string{env.root, extra}), finished.Report.Roots)

	m = send(t, m, finished)
	assert.False(t, m.scanning)
	assert.False(t, m.stale)
}

func TestApp_ScanSaveFailureStillShowsIndex(t *testing.T) {
	m, env := newTestModel(t)
	report := &library.ScanReport{Files: 3}

	env.store.PutIndexErr = errors.New("disk full")
	m = send(t, m, ScanFinishedMsg{Report: report, Err: errors.New("save index: disk full")})

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Failed to save library index")
	assert.Equal(t, 3, m.src.Index().Len())
}

func TestApp_LibraryChangedMarksStale(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, LibraryChangedMsg{source: m.changes})
	assert.True(t, m.stale)
	assert.Contains(t, m.View(), "changed on disk")

	m = send(t, m, ScanFinishedMsg{Report: &library.ScanReport{}})
	assert.False(t, m.stale)
}

func TestApp_RemoveAndAddRoot(t *testing.T) {
	m, env := newTestModel(t)
	sidecar := state.SidecarPath(env.store.Dir())

	m = press(t, m, "-")
	assert.Empty(t, m.roots)
	roots, err := state.ReadRoots(sidecar)
	require.NoError(t, err)
	assert.Empty(t, roots)

	m = press(t, m, "+")
	require.NotNil(t, m.prompt)
	m.prompt.input.SetValue(filepath.Join(env.root, "missing"))
	m = press(t, m, "enter")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Failed to add library root")

	m = press(t, m, "+")
	m.prompt.input.SetValue(env.root)
	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	assert.Equal(t, []string{env.root}, m.roots)
	assert.True(t, m.scanning)
	assert.NotNil(t, cmd)

	roots, err = state.ReadRoots(sidecar)
	require.NoError(t, err)
	assert.Equal(t, []string{env.root}, roots)
}

func TestApp_RemoveRootNeedsRootSelected(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, "enter", "-")

	assert.True(t, m.statusErr)
	assert.Equal(t, []string{env.root}, m.roots)
}

func TestApp_QuitPersistsPreferences(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, "t", "1", "tab", "s", "S")

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	saved, err := env.store.GetConfig()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "tag", saved.TreeKind)
	assert.Equal(t, "directory", saved.SortKey)
	assert.True(t, saved.SortDescending)
	assert.Equal(t, []string{"mp3"}, saved.Extensions)
	assert.Equal(t, []string{env.root}, saved.Roots)
}

func TestApp_RestoresPreferences(t *testing.T) {
	env := newTestEnv(t)
	env.scan(t)
	require.NoError(t, env.store.PutConfig(state.Config{
		Extensions:     []string{"flac"},
		SortKey:        "artist",
		SortDescending: true,
		TreeKind:       "tag",
	}))

	m := env.model(t)
	assert.Equal(t, library.TagTree, m.tree)
	assert.Equal(t, playlist.SortArtist, m.sortKey)
	assert.True(t, m.sortDesc)
	assert.False(t, m.filter.Contains("mp3"))

	var names []string
	for _, n := range m.browser.CurrentItems() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Rock"}, names)
}

func TestApp_RootsFallBackToStoredConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.PutConfig(state.Config{Roots: []string{env.root}}))

	m, err := New(Deps{Config: env.cfg, State: env.store, Library: env.lib, Logger: quietLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	assert.Equal(t, []string{env.root}, m.roots)
	assert.True(t, m.needsScan)
}

func TestApp_LoadError(t *testing.T) {
	env := newTestEnv(t)
	env.store.GetIndexErr = errors.New("disk on fire")

	_, err := New(Deps{Config: env.cfg, State: env.store, Library: env.lib, Logger: quietLogger()})
	assert.Error(t, err)
}

func TestApp_HelpAndView(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "shelf")
	assert.Contains(t, view, "Playlist")
	assert.Contains(t, view, "3 tracks in 1 roots")
	assert.Contains(t, view, "tab: switch pane")
	assert.Contains(t, view, "(empty: press a in the browser)")

	m = press(t, m, "?")
	help := m.View()
	assert.True(t, strings.Contains(help, "Export XSPF"))
	assert.Contains(t, help, "l, right, enter")

	m = press(t, m, "j")
	assert.False(t, m.showHelp, "any key closes help")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
