package navigator

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m Model[T]) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	innerWidth := max(m.width-2, 1)
	listHeight := max(m.listHeight(), 0)

	header := headerStyle.Render(Fit(m.CurrentPath(), innerWidth))
	separator := mutedStyle.Render(strings.Repeat("─", innerWidth))

	lines := make([]string, 0, listHeight)
	switch {
	case m.err != nil:
		lines = append(lines, errorStyle.Render(Fit(m.err.Error(), innerWidth)))
	case len(m.currentItems) == 0:
		lines = append(lines, mutedStyle.Render(Fit("(empty)", innerWidth)))
	}
	for i := m.offset; i < len(m.currentItems) && len(lines) < listHeight; i++ {
		lines = append(lines, m.renderItem(i, innerWidth))
	}
	for len(lines) < listHeight {
		lines = append(lines, strings.Repeat(" ", innerWidth))
	}

	content := header + "\n" + separator
	if len(lines) > 0 {
		content += "\n" + strings.Join(lines, "\n")
	}
	return PanelStyle(m.focused).Width(innerWidth).Render(content)
}

func (m Model[T]) renderItem(i, width int) string {
	node := m.currentItems[i]

	prefix := "  "
	if i == m.cursor {
		prefix = "> "
	}
	name := node.DisplayName()
	if node.IsContainer() {
		name += "/"
	}

	var note string
	if m.decorate != nil {
		note = m.decorate(node)
	}
	nameWidth := width - len(prefix)
	if note != "" {
		nameWidth -= lipgloss.Width(note) + 1
	}
	line := prefix + Fit(name, max(nameWidth, 0))
	if note != "" {
		line += " " + mutedStyle.Render(note)
	}

	switch {
	case i == m.cursor && m.focused:
		return cursorStyle.Render(line)
	case node.IsContainer():
		return containerStyle.Render(line)
	default:
		return leafStyle.Render(line)
	}
}

// Fit truncates s to width cells, with an ellipsis when shortened, and pads
// it with spaces to exactly width. Control characters are dropped.
func Fit(s string, width int) string {
	return FitStyled(sanitize(s), width)
}

// FitStyled is Fit for text that already carries ANSI styling.
func FitStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// sanitize drops control characters that would break the layout; tag values
// read from files can carry them.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
