package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/keymap"
	"github.com/llehouerou/shelf/internal/library"
)

func (m Model) handleBrowserAction(action keymap.Action, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionMoveLeft,
		keymap.ActionMoveRight, keymap.ActionJumpStart, keymap.ActionJumpEnd:
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd

	case keymap.ActionAdd:
		if selected := m.browser.Selected(); selected != nil {
			m.addNode(*selected)
		}

	case keymap.ActionAddDirectory:
		m.addNode(m.browser.Current())

	case keymap.ActionToggleTree:
		if m.tree == library.PathTree {
			m.tree = library.TagTree
		} else {
			m.tree = library.PathTree
		}
		m.reloadBrowser()

	case keymap.ActionToggleExt:
		n := int(msg.String()[0] - '1')
		if n < len(m.exts) {
			m.toggleExtension(m.exts[n])
		}

	case keymap.ActionAllExts:
		m.setFilter(nil)

	case keymap.ActionAddRoot:
		return m.openPrompt(promptAddRoot, "Track directory: ", m.suggestRoot())

	case keymap.ActionRemoveRoot:
		return m.removeSelectedRoot()
	}
	return m, nil
}

// addNode appends every record below node, in tree order, that passes the
// extension filter.
func (m *Model) addNode(node library.NodeSummary) {
	n, err := m.playlist.AddDirectory(m.src.Index(), node.Ref, m.filter)
	if err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistAdd, node.Name, err))
		return
	}
	if n == 1 {
		m.setStatus(fmt.Sprintf("Added %s", node.Name))
		return
	}
	m.setStatus(fmt.Sprintf("Added %s tracks from %s", humanize.Comma(int64(n)), node.Name))
}

func (m Model) suggestRoot() string {
	if sel := m.browser.Selected(); sel != nil && sel.Kind == library.KindDirectory {
		return sel.Path
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

func (m Model) addRoot(input string) (tea.Model, tea.Cmd) {
	path, err := filepath.Abs(expandHome(input))
	if err == nil {
		var info os.FileInfo
		info, err = os.Stat(path)
		if err == nil && !info.IsDir() {
			err = errNotADirectory
		}
	}
	if err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpRootAdd, input, err))
		return m, nil
	}

	roots := library.NormalizeRoots(append(slices.Clone(m.roots), path))
	if slices.Equal(roots, m.roots) {
		m.setStatus(fmt.Sprintf("%s is already tracked", path))
		return m, nil
	}
	return m.setRoots(roots)
}

// removeSelectedRoot stops tracking the root selected at the top of the
// path tree.
func (m Model) removeSelectedRoot() (tea.Model, tea.Cmd) {
	sel := m.browser.Selected()
	if m.tree != library.PathTree || sel == nil || !slices.Contains(m.roots, sel.Path) {
		m.setError(errmsg.Format(errmsg.OpRootRemove, errNotARoot))
		return m, nil
	}
	roots := slices.DeleteFunc(slices.Clone(m.roots), func(r string) bool { return r == sel.Path })
	return m.setRoots(roots)
}

var (
	errNotARoot      = errors.New("select a library root at the top of the path tree")
	errNotADirectory = errors.New("not a directory")
)

// setRoots persists the new roots, restarts the watcher and rescans. A scan
// of the old roots is canceled and the rescan follows once it stops.
func (m Model) setRoots(roots []string) (tea.Model, tea.Cmd) {
	m.roots = roots
	if err := m.savePreferences(); err != nil {
		m.setError(errmsg.Format(errmsg.OpConfigSave, err))
	}
	watchCmd := m.restartWatcher()
	if m.scanning {
		m.scanCancel()
		m.rescanNext = true
		m.stale = true
		m.setStatus("Roots changed: rescanning once the current scan stops")
		return m, watchCmd
	}
	next, scanCmd := m.startScan()
	return next, tea.Batch(watchCmd, scanCmd)
}

func (m Model) openPrompt(kind promptKind, label, value string) (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = label
	ti.CharLimit = 4096
	ti.Width = max(m.width-len(label)-4, 20)
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	m.prompt = &prompt{kind: kind, input: ti}
	return m, textinput.Blink
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.prompt = nil
		m.setStatus("Canceled")
		return m, nil

	case "enter":
		p := m.prompt
		m.prompt = nil
		value := p.input.Value()
		if value == "" {
			return m, nil
		}
		switch p.kind {
		case promptAddRoot:
			return m.addRoot(value)
		case promptExport:
			return m.exportTo(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func expandHome(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func decorateNode(n library.NodeSummary) string {
	switch {
	case n.IsContainer():
		return humanize.Comma(int64(n.Count))
	case n.Count > 1:
		return fmt.Sprintf("×%d", n.Count)
	}
	return ""
}
