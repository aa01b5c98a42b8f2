package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/shelf/internal/keymap"
	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/navigator"
	"github.com/llehouerou/shelf/internal/playlist"
)

var (
	headerBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	staleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	activeExtStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// chromeHeight is the header bar plus the status line.
const chromeHeight = 2

func (m *Model) resize() {
	paneHeight := max(m.height-chromeHeight, 0)
	m.browser.SetSize(m.browserWidth(), paneHeight)
	m.adjustPlaylistOffset()
	if m.prompt != nil {
		m.prompt.input.Width = max(m.width-len(m.prompt.input.Prompt)-4, 20)
	}
}

func (m Model) browserWidth() int {
	return m.width / 2
}

// paneListHeight is the number of playlist rows that fit in the pane.
func (m Model) paneListHeight() int {
	return m.height - chromeHeight - 4
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.browser.View(),
		m.playlistView(m.width-m.browserWidth(), m.height-chromeHeight),
	)
	return m.headerView() + "\n" + panes + "\n" + m.statusView()
}

func (m Model) headerView() string {
	idx := m.src.Index()
	parts := []string{
		headerBarStyle.Render("shelf"),
		fmt.Sprintf("%s tracks in %d roots", humanize.Comma(int64(idx.Len())), len(m.roots)),
		m.tree.String() + " tree",
		m.extensionsView(),
	}
	if !idx.ScannedAt.IsZero() {
		parts = append(parts, "scanned "+humanize.RelTime(idx.ScannedAt, m.now(), "ago", "from now"))
	}
	if m.stale {
		parts = append(parts, staleStyle.Render("changed on disk: press r to rescan"))
	}
	return navigator.FitStyled(strings.Join(parts, mutedStyle.Render(" · ")), m.width)
}

// extensionsView lists the filter toggles, the shown ones highlighted.
func (m Model) extensionsView() string {
	items := make([]string, 0, len(m.exts))
	for i, ext := range m.exts {
		label := fmt.Sprintf("%d:%s", i+1, ext)
		if m.filter.Contains(ext) {
			items = append(items, activeExtStyle.Render(label))
		} else {
			items = append(items, mutedStyle.Render(label))
		}
	}
	return strings.Join(items, " ")
}

func (m Model) statusView() string {
	switch {
	case m.prompt != nil:
		return m.prompt.input.View()
	case m.scanning:
		return navigator.Fit(progressLine(m.progress), m.width)
	case m.statusErr:
		return errorStyle.Render(navigator.Fit(m.status, m.width))
	case m.status != "":
		return navigator.Fit(m.status, m.width)
	}
	hint := fmt.Sprintf("%s: switch pane · %s: help · %s: quit",
		m.keyFor(focusBrowser, keymap.ActionSwitchFocus),
		m.keyFor(focusBrowser, keymap.ActionHelp),
		m.keyFor(focusBrowser, keymap.ActionQuit))
	return mutedStyle.Render(navigator.Fit(hint, m.width))
}

// keyFor returns the first key bound to action in the given pane.
func (m Model) keyFor(focus focusTarget, action keymap.Action) string {
	if keys := m.keys[focus].KeysFor(action); len(keys) > 0 {
		return keys[0]
	}
	return "?"
}

func progressLine(p library.ScanProgress) string {
	switch p.Phase {
	case library.PhaseProcessing:
		return fmt.Sprintf("Reading tags %s/%s", humanize.Comma(int64(p.Current)), humanize.Comma(int64(p.Total)))
	case library.PhaseBuilding:
		return fmt.Sprintf("Building index of %s files", humanize.Comma(int64(p.Total)))
	case library.PhaseSaving:
		return "Saving index..."
	default:
		return fmt.Sprintf("Scanning directories: %s files found", humanize.Comma(int64(p.Current)))
	}
}

func (m Model) playlistView(width, height int) string {
	inner := max(width-2, 1)
	listHeight := max(height-4, 0)

	order := "↑"
	if m.sortDesc {
		order = "↓"
	}
	title := fmt.Sprintf("Playlist · %s tracks · %s · sort: %s %s",
		humanize.Comma(int64(m.playlist.Len())), formatDuration(m.playlist.Duration()), m.sortKey, order)

	lines := []string{
		navigator.Fit(title, inner),
		mutedStyle.Render(strings.Repeat("─", inner)),
	}
	entries := m.playlist.Entries()
	for i := m.plOffset; i < len(entries) && i < m.plOffset+listHeight; i++ {
		prefix := "  "
		if i == m.plCursor {
			prefix = "> "
		}
		line := navigator.Fit(fmt.Sprintf("%s%3d. %s", prefix, i+1, entryLabel(entries[i])), inner)
		if i == m.plCursor && m.focus == focusPlaylist {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(entries) == 0 {
		lines = append(lines, mutedStyle.Render(navigator.Fit(
			fmt.Sprintf("(empty: press %s in the browser)", m.keyFor(focusBrowser, keymap.ActionAdd)), inner)))
	}
	for len(lines) < listHeight+2 {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return navigator.PanelStyle(m.focus == focusPlaylist).Width(inner).Render(strings.Join(lines, "\n"))
}

func entryLabel(e playlist.Entry) string {
	t := e.Tags()
	title := t.Title
	if title == "" {
		title = filepath.Base(e.Path)
	}
	label := title
	if t.Artist != "" {
		label = t.Artist + " - " + title
	}
	if t.Duration > 0 {
		label += " (" + formatDuration(t.Duration) + ")"
	}
	return label
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// helpView lists the keys each pane actually resolves.
func (m Model) helpView() string {
	sections := []struct {
		ctx   string
		focus focusTarget
	}{
		{"global", focusBrowser},
		{"browser", focusBrowser},
		{"playlist", focusPlaylist},
	}
	var b strings.Builder
	for _, s := range sections {
		ctx := s.ctx
		b.WriteString(headerBarStyle.Render(strings.ToUpper(ctx[:1])+ctx[1:]) + "\n")
		for _, kb := range m.keys[s.focus].Help(ctx) {
			fmt.Fprintf(&b, "  %-16s %s\n", strings.Join(kb.Keys, ", "), kb.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("press any key to close"))
	return b.String()
}
