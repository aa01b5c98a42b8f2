package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/export"
	"github.com/llehouerou/shelf/internal/keymap"
)

func (m Model) handlePlaylistAction(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionMoveUp:
		m.movePlaylistCursor(-1)
	case keymap.ActionMoveDown:
		m.movePlaylistCursor(1)
	case keymap.ActionJumpStart:
		m.movePlaylistCursor(-m.playlist.Len())
	case keymap.ActionJumpEnd:
		m.movePlaylistCursor(m.playlist.Len())

	case keymap.ActionRemove:
		if err := m.playlist.Remove(m.plCursor); err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaylistRemove, err))
			return m, nil
		}
		m.clampPlaylistCursor()

	case keymap.ActionRemoveDirectory:
		entry := m.playlist.Entry(m.plCursor)
		if entry == nil {
			return m, nil
		}
		dir := filepath.Dir(entry.Path)
		n := m.playlist.RemoveDirectory(dir)
		m.clampPlaylistCursor()
		m.setStatus(fmt.Sprintf("Removed %s entries under %s", humanize.Comma(int64(n)), dir))

	case keymap.ActionClear:
		m.playlist.Clear()
		m.clampPlaylistCursor()

	case keymap.ActionCycleSort:
		m.sortKey = m.sortKey.Next()
		m.playlist.Sort(m.sortKey, m.sortDesc)
		m.setStatus(fmt.Sprintf("Sorted by %s", m.sortKey))

	case keymap.ActionToggleOrder:
		m.sortDesc = !m.sortDesc
		m.playlist.Sort(m.sortKey, m.sortDesc)
		m.setStatus(fmt.Sprintf("Sorted by %s, %s", m.sortKey, orderName(m.sortDesc)))

	case keymap.ActionShuffle:
		m.playlist.ShuffleRandom()
		m.setStatus("Shuffled")

	case keymap.ActionExport:
		if m.playlist.Len() == 0 {
			m.setError(errmsg.Format(errmsg.OpExport, export.ErrEmpty))
			return m, nil
		}
		dest := filepath.Join(m.cfg.GetExportDir(), export.DefaultFileName(m.playlist.Entries(), m.now()))
		return m.openPrompt(promptExport, "Export to: ", dest)

	case keymap.ActionPlay:
		if m.playlist.Len() == 0 {
			m.setError(errmsg.Format(errmsg.OpPlayerOpen, export.ErrEmpty))
			return m, nil
		}
		return m, playCmd(m.playlist.Entries(), m.cfg.Player, m.exportOptions())
	}
	return m, nil
}

func (m Model) exportOptions() export.Options {
	return export.Options{Title: "shelf playlist", Creator: "shelf"}
}

func (m Model) exportTo(dest string) (tea.Model, tea.Cmd) {
	m.setStatus("Exporting...")
	return m, exportCmd(m.playlist.Entries(), expandHome(dest), m.exportOptions())
}

func (m Model) handleExported(msg ExportedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpExport, msg.Path, msg.Err))
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Exported %s tracks to %s", humanize.Comma(int64(msg.Count)), msg.Path))
	return m, nil
}

func (m Model) handlePlayerStarted(msg PlayerStartedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err != nil && msg.Path == "":
		m.setError(errmsg.Format(errmsg.OpExport, msg.Err))
	case msg.Err != nil:
		m.setError(errmsg.FormatWith(errmsg.OpPlayerOpen, m.cfg.Player, msg.Err))
	case m.cfg.HasPlayer():
		m.setStatus(fmt.Sprintf("Playing %s", msg.Path))
	default:
		m.setStatus(fmt.Sprintf("Playlist written to %s (set player in config.toml to launch it)", msg.Path))
	}
	return m, nil
}

func (m *Model) movePlaylistCursor(delta int) {
	if m.playlist.Len() == 0 {
		return
	}
	m.plCursor = min(max(m.plCursor+delta, 0), m.playlist.Len()-1)
	m.adjustPlaylistOffset()
}

func (m *Model) clampPlaylistCursor() {
	m.plCursor = min(m.plCursor, max(m.playlist.Len()-1, 0))
	m.adjustPlaylistOffset()
}

func (m *Model) adjustPlaylistOffset() {
	h := m.paneListHeight()
	if h <= 0 {
		return
	}
	if m.plCursor < m.plOffset {
		m.plOffset = m.plCursor
	}
	if m.plCursor >= m.plOffset+h {
		m.plOffset = m.plCursor - h + 1
	}
	m.plOffset = min(m.plOffset, max(m.playlist.Len()-h, 0))
}

func orderName(descending bool) string {
	if descending {
		return "descending"
	}
	return "ascending"
}
