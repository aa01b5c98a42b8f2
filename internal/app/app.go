package app

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/shelf/internal/config"
	"github.com/llehouerou/shelf/internal/keymap"
	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/navigator"
	"github.com/llehouerou/shelf/internal/playlist"
	"github.com/llehouerou/shelf/internal/state"
	"github.com/llehouerou/shelf/internal/watch"
)

type focusTarget int

const (
	focusBrowser focusTarget = iota
	focusPlaylist
)

type promptKind int

const (
	promptExport promptKind = iota
	promptAddRoot
)

type prompt struct {
	kind  promptKind
	input textinput.Model
}

// WatchFunc starts a watcher over roots.
type WatchFunc func(roots []string) (*watch.Watcher, error)

// Deps holds the collaborators of the client.
type Deps struct {
	Config  *config.Config
	State   state.Interface
	Library *library.Library
	Logger  logrus.FieldLogger

	// Roots tracked at startup, usually read from the sidecar. When empty
	// the stored config, then the config file, provide them.
	Roots []string
	Watch WatchFunc // optional
	Now   func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	cfg    *config.Config
	state  state.Interface
	lib    *library.Library
	log    logrus.FieldLogger
	watchF WatchFunc
	now    func() time.Time

	roots   []string
	exts    []string // extensions offered by the filter toggles
	filter  library.ExtensionSet
	tree    library.TreeKind
	src     *library.TreeSource
	browser navigator.Model[library.NodeSummary]

	playlist *playlist.Playlist
	plCursor int
	plOffset int
	sortKey  playlist.SortKey
	sortDesc bool

	focus focusTarget
	keys  map[focusTarget]*keymap.Resolver

	scanning   bool
	scanCh     chan library.ScanProgress
	scanCancel context.CancelFunc
	progress   library.ScanProgress
	needsScan  bool
	rescanNext bool // roots changed during a scan

	watcher *watch.Watcher
	changes <-chan watch.Change
	stale   bool

	prompt    *prompt
	showHelp  bool
	status    string
	statusErr bool

	width  int
	height int
}

// New restores the persisted preferences and the stored index and builds
// the client.
func New(deps Deps) (Model, error) {
	m := Model{
		cfg:      deps.Config,
		state:    deps.State,
		lib:      deps.Library,
		log:      deps.Logger,
		watchF:   deps.Watch,
		now:      deps.Now,
		playlist: playlist.New(),
		sortKey:  playlist.SortPath,
		keys: map[focusTarget]*keymap.Resolver{
			focusBrowser:  keymap.NewResolver(keymap.ForContexts("browser", "global")),
			focusPlaylist: keymap.NewResolver(keymap.ForContexts("playlist", "global")),
		},
	}
	if m.cfg == nil {
		m.cfg = &config.Config{}
	}
	if m.log == nil {
		m.log = logrus.StandardLogger()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.exts = library.NewExtensionSet(m.cfg.GetExtensions()...).Slice()

	saved, err := m.state.GetConfig()
	if err != nil {
		// Preferences are a convenience; start from defaults.
		m.log.WithError(err).Warn("stored preferences unusable")
		saved = nil
	}
	m.restore(saved, deps.Roots)

	status, err := m.lib.Load()
	if err != nil {
		return Model{}, err
	}
	m.needsScan = status == library.NeedsRescan && len(m.roots) > 0

	m.src = library.NewTreeSource(m.lib.Current(), m.tree, m.filter)
	m.browser, err = navigator.New[library.NodeSummary](m.src)
	if err != nil {
		return Model{}, err
	}
	m.browser.SetDecorator(decorateNode)
	m.browser.SetFocused(true)

	m.startWatcher()
	return m, nil
}

func (m *Model) restore(saved *state.Config, roots []string) {
	switch {
	case len(roots) > 0:
	case saved != nil && len(saved.Roots) > 0:
		roots = saved.Roots
	default:
		roots = m.cfg.Roots
	}
	m.roots = library.NormalizeRoots(roots)

	if saved == nil {
		return
	}
	if saved.Extensions != nil {
		m.filter = library.NewExtensionSet(saved.Extensions...)
	}
	if key, err := playlist.ParseSortKey(saved.SortKey); err == nil {
		m.sortKey = key
	}
	m.sortDesc = saved.SortDescending
	if tree, err := library.ParseTreeKind(saved.TreeKind); err == nil {
		m.tree = tree
	}
}

// Init starts the first scan when nothing usable was stored, and listens to
// the watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForWatch()}
	if m.needsScan {
		cmds = append(cmds, func() tea.Msg { return rescanRequestMsg{} })
	}
	return tea.Batch(cmds...)
}

type rescanRequestMsg struct{}

// preferences returns what survives a restart.
func (m Model) preferences() state.Config {
	cfg := state.Config{
		Roots:          slices.Clone(m.roots),
		SortKey:        string(m.sortKey),
		SortDescending: m.sortDesc,
		TreeKind:       m.tree.String(),
	}
	if m.filter != nil {
		cfg.Extensions = m.filter.Slice()
	}
	return cfg
}

// setFilter replaces the extension filter and reloads the browser. The
// index is not rebuilt.
func (m *Model) setFilter(filter library.ExtensionSet) {
	m.filter = filter
	m.reloadBrowser()
}

// toggleExtension hides or shows ext. Starting from the unfiltered view,
// the first toggle hides ext and keeps every other extension.
func (m *Model) toggleExtension(ext string) {
	base := maps.Clone(m.filter)
	if base == nil {
		base = library.NewExtensionSet(m.exts...)
	}
	m.setFilter(base.Toggle(ext))
}

func (m *Model) reloadBrowser() {
	m.src = library.NewTreeSource(m.lib.Current(), m.tree, m.filter)
	m.browser.SetSource(m.src)
}

// Close releases the watcher and cancels a running scan.
func (m Model) Close() error {
	if m.scanCancel != nil {
		m.scanCancel()
	}
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
