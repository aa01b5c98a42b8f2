package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/multierr"

	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/state"
	"github.com/llehouerou/shelf/internal/watch"
)

// savePreferences writes the preferences to the store and the roots to the
// sidecar.
func (m Model) savePreferences() error {
	prefs := m.preferences()
	err := m.state.PutConfig(prefs)
	if dir := m.state.Dir(); dir != "" {
		err = multierr.Append(err, state.WriteRoots(state.SidecarPath(dir), prefs.Roots))
	}
	return err
}

func (m *Model) startWatcher() {
	if m.watchF == nil || len(m.roots) == 0 {
		return
	}
	w, err := m.watchF(m.roots)
	if err != nil {
		m.log.WithError(err).Warn("file watcher unavailable")
		return
	}
	m.watcher = w
	m.changes = w.Changes()
}

// restartWatcher follows a change of roots.
func (m *Model) restartWatcher() tea.Cmd {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.WithError(err).Warn("closing watcher")
		}
		m.watcher, m.changes = nil, nil
	}
	m.startWatcher()
	return m.waitForWatch()
}

// NewWatchFunc returns a WatchFunc watching files with the given extensions.
func NewWatchFunc(exts library.ExtensionSet, opts watch.Options) WatchFunc {
	opts.Extensions = exts
	return func(roots []string) (*watch.Watcher, error) {
		return watch.New(roots, opts)
	}
}
