package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "browser", "playlist"
}

// All contains all key bindings, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "global"},
	{ActionRescan, []string{"r"}, "Rescan library", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Browser
	{ActionMoveUp, []string{"k", "up"}, "Move up", "browser"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "browser"},
	{ActionMoveLeft, []string{"h", "left"}, "Parent", "browser"},
	{ActionMoveRight, []string{"l", "right", "enter"}, "Open", "browser"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "browser"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "browser"},
	{ActionAdd, []string{"a"}, "Add selected", "browser"},
	{ActionAddDirectory, []string{"A"}, "Add current directory", "browser"},
	{ActionToggleTree, []string{"t"}, "Toggle path/tag tree", "browser"},
	{ActionToggleExt, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Toggle nth extension", "browser"},
	{ActionAllExts, []string{"0"}, "Show all extensions", "browser"},
	{ActionAddRoot, []string{"+"}, "Track a new directory", "browser"},
	{ActionRemoveRoot, []string{"-"}, "Stop tracking root", "browser"},

	// Playlist
	{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	{ActionJumpStart, []string{"g", "home"}, "First entry", "playlist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last entry", "playlist"},
	{ActionRemove, []string{"d", "delete"}, "Remove entry", "playlist"},
	{ActionRemoveDirectory, []string{"D"}, "Remove entry's directory", "playlist"},
	{ActionClear, []string{"c"}, "Clear playlist", "playlist"},
	{ActionCycleSort, []string{"s"}, "Cycle sort key", "playlist"},
	{ActionToggleOrder, []string{"S"}, "Toggle sort order", "playlist"},
	{ActionShuffle, []string{"x"}, "Shuffle", "playlist"},
	{ActionExport, []string{"e"}, "Export XSPF", "playlist"},
	{ActionPlay, []string{"p"}, "Export and play", "playlist"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContexts returns the bindings of the given contexts. Later contexts
// override keys bound by earlier ones when passed to NewResolver.
func ForContexts(contexts ...string) []Binding {
	var result []Binding
	for _, c := range contexts {
		result = append(result, ByContext(c)...)
	}
	return result
}
