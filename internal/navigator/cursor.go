package navigator

const (
	// panelOverhead is the border plus the header and its separator.
	panelOverhead = 4
	scrollMargin  = 3
)

func (m Model[T]) listHeight() int {
	return m.height - panelOverhead
}

// adjustOffset adjusts the scroll offset to keep the cursor visible with margin.
func (m *Model[T]) adjustOffset() {
	listHeight := m.listHeight()
	if listHeight <= 0 {
		return
	}
	margin := min(scrollMargin, (listHeight-1)/2)

	if m.cursor < m.offset+margin {
		m.offset = max(m.cursor-margin, 0)
	}

	if m.cursor >= m.offset+listHeight-margin {
		m.offset = m.cursor - listHeight + margin + 1
	}

	maxOffset := max(len(m.currentItems)-listHeight, 0)
	m.offset = min(m.offset, maxOffset)
}

// centerCursor centers the view on the current cursor position.
func (m *Model[T]) centerCursor() {
	listHeight := m.listHeight()
	if listHeight <= 0 {
		return
	}

	m.offset = max(m.cursor-listHeight/2, 0)
	maxOffset := max(len(m.currentItems)-listHeight, 0)
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
}

// focusNode moves the cursor to the node with the given ID, or to the top.
func (m *Model[T]) focusNode(id string) {
	if m.SelectByID(id) {
		return
	}
	m.cursor = 0
	m.offset = 0
}

// SelectByID selects the item with the given ID in the current view.
// Returns true if found, false otherwise. Does not navigate to other containers.
func (m *Model[T]) SelectByID(id string) bool {
	if id == "" {
		return false
	}
	for i, node := range m.currentItems {
		if node.ID() == id {
			m.cursor = i
			m.centerCursor()
			return true
		}
	}
	return false
}

// Selected returns a pointer to the currently selected item, or nil if none.
func (m Model[T]) Selected() *T {
	if len(m.currentItems) == 0 || m.cursor >= len(m.currentItems) {
		return nil
	}
	return &m.currentItems[m.cursor]
}

// SelectedID returns the ID of the selected item, or empty if none.
func (m Model[T]) SelectedID() string {
	if selected := m.Selected(); selected != nil {
		return (*selected).ID()
	}
	return ""
}
