// Package navigator provides a keyboard-driven browser over any tree-shaped
// Source.
package navigator

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NavigationChangedMsg is sent when the current container or selection changes.
type NavigationChangedMsg struct {
	CurrentID  string
	SelectedID string
}

type Model[T Node] struct {
	source       Source[T]
	current      T
	currentItems []T
	decorate     Decorator[T]
	cursor       int
	offset       int
	width        int
	height       int
	focused      bool
	err          error
}

func New[T Node](source Source[T]) (Model[T], error) {
	m := Model[T]{
		source:  source,
		current: source.Root(),
	}

	if err := m.refresh(); err != nil {
		return Model[T]{}, err
	}

	return m, nil
}

func (m *Model[T]) refresh() error {
	items, err := m.source.Children(m.current)
	m.err = err
	if err != nil {
		m.currentItems = nil
		m.cursor, m.offset = 0, 0
		return err
	}
	m.currentItems = items

	if m.cursor >= len(m.currentItems) {
		m.cursor = max(0, len(m.currentItems)-1)
	}
	m.adjustOffset()
	return nil
}

// SetSource swaps the underlying source, keeping the current position when
// the new source still knows it and falling back to its root otherwise.
func (m *Model[T]) SetSource(source Source[T]) {
	currentID, selectedID := m.current.ID(), m.SelectedID()
	m.source = source

	if node, ok := source.NodeFromID(currentID); ok && node.IsContainer() {
		m.current = node
	} else {
		m.current = source.Root()
		m.cursor, m.offset = 0, 0
	}
	_ = m.refresh()
	m.SelectByID(selectedID)
}

// Refresh reloads the children of the current container.
func (m *Model[T]) Refresh() {
	selectedID := m.SelectedID()
	_ = m.refresh()
	m.SelectByID(selectedID)
}

// SetDecorator installs a function annotating each row.
func (m *Model[T]) SetDecorator(d Decorator[T]) {
	m.decorate = d
}

// SetFocused marks whether the navigator receives key input.
func (m *Model[T]) SetFocused(focused bool) {
	m.focused = focused
}

func (m Model[T]) IsFocused() bool {
	return m.focused
}

// SetSize sets the outer size of the panel.
func (m *Model[T]) SetSize(width, height int) {
	m.width, m.height = width, height
	m.adjustOffset()
}

// NavigateTo opens the container with the given ID, or the parent of a leaf
// with the cursor on it.
func (m *Model[T]) NavigateTo(id string) bool {
	node, ok := m.source.NodeFromID(id)
	if !ok {
		return false
	}

	if node.IsContainer() {
		m.current = node
		m.cursor, m.offset = 0, 0
		_ = m.refresh()
		return true
	}

	parent := m.source.Parent(node)
	if parent == nil {
		return false
	}
	m.current = *parent
	m.cursor, m.offset = 0, 0
	_ = m.refresh()
	m.SelectByID(id)
	return true
}

// Current returns the container being listed.
func (m Model[T]) Current() T {
	return m.current
}

// CurrentPath returns the display path of the current container.
func (m Model[T]) CurrentPath() string {
	return m.source.DisplayPath(m.current)
}

// CurrentItems returns the items in the current container.
func (m Model[T]) CurrentItems() []T {
	return m.currentItems
}

// Err returns the error of the last listing, if any.
func (m Model[T]) Err() error {
	return m.err
}

func (m Model[T]) navigationChangedCmd() tea.Cmd {
	msg := NavigationChangedMsg{
		CurrentID:  m.current.ID(),
		SelectedID: m.SelectedID(),
	}
	return func() tea.Msg { return msg }
}

func (m Model[T]) Init() tea.Cmd {
	return nil
}

func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	var navChanged bool

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			navChanged = m.move(-1)

		case "down", "j":
			navChanged = m.move(1)

		case "home", "g":
			navChanged = m.move(-len(m.currentItems))

		case "end", "G":
			navChanged = m.move(len(m.currentItems))

		case "left", "h":
			navChanged = m.Up()

		case "right", "l", "enter":
			navChanged = m.Descend()
		}
	}

	if navChanged {
		return m, m.navigationChangedCmd()
	}
	return m, nil
}

// Up moves to the parent container and selects the one just left.
func (m *Model[T]) Up() bool {
	parent := m.source.Parent(m.current)
	if parent == nil {
		return false
	}
	prevID := m.current.ID()
	m.current = *parent
	_ = m.refresh()
	m.focusNode(prevID)
	return true
}

// Descend opens the selected item if it is a container.
func (m *Model[T]) Descend() bool {
	selected := m.Selected()
	if selected == nil || !(*selected).IsContainer() {
		return false
	}
	m.current = *selected
	m.cursor, m.offset = 0, 0
	_ = m.refresh()
	return true
}

func (m *Model[T]) move(delta int) bool {
	if len(m.currentItems) == 0 {
		return false
	}
	next := min(max(m.cursor+delta, 0), len(m.currentItems)-1)
	if next == m.cursor {
		return false
	}
	m.cursor = next
	m.adjustOffset()
	return true
}
