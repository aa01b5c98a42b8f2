package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shelf/internal/keymap"
	"github.com/llehouerou/shelf/internal/navigator"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case LibraryScanMessage:
		return m.handleLibraryScanMsg(msg)

	case rescanRequestMsg:
		return m.startScan()

	case LibraryChangedMsg:
		if msg.source != m.changes {
			return m, nil
		}
		m.stale = true
		return m, m.waitForWatch()

	case ExportedMsg:
		return m.handleExported(msg)

	case PlayerStartedMsg:
		return m.handlePlayerStarted(msg)

	case navigator.NavigationChangedMsg:
		return m, nil
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	key := msg.String()
	action := m.keys[m.focus].Resolve(key)

	switch action {
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionSwitchFocus:
		m.switchFocus()
		return m, nil
	case keymap.ActionRescan:
		return m.startScan()
	case keymap.ActionHelp:
		m.showHelp = true
		return m, nil
	case "":
		return m, nil
	}

	if m.focus == focusBrowser {
		return m.handleBrowserAction(action, msg)
	}
	return m.handlePlaylistAction(action)
}

func (m *Model) switchFocus() {
	if m.focus == focusBrowser {
		m.focus = focusPlaylist
	} else {
		m.focus = focusBrowser
	}
	m.browser.SetFocused(m.focus == focusBrowser)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.savePreferences(); err != nil {
		m.log.WithError(err).Error("saving preferences on exit")
	}
	if err := m.Close(); err != nil {
		m.log.WithError(err).Warn("closing watcher")
	}
	return m, tea.Quit
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}
