// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionRescan      Action = "rescan"
	ActionHelp        Action = "help"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Browser actions
	ActionAdd          Action = "add"           // a - add the selected node
	ActionAddDirectory Action = "add_directory" // A - add the listed container
	ActionToggleTree   Action = "toggle_tree"   // t - path tree / tag tree
	ActionAddRoot      Action = "add_root"      // + - track a new directory
	ActionRemoveRoot   Action = "remove_root"   // - - stop tracking a root
	ActionToggleExt    Action = "toggle_ext"    // 1-9 - hide/show the nth extension
	ActionAllExts      Action = "all_exts"      // 0 - show every extension

	// Playlist actions
	ActionRemove          Action = "remove"           // d
	ActionRemoveDirectory Action = "remove_directory" // D
	ActionClear           Action = "clear"            // c
	ActionCycleSort       Action = "cycle_sort"       // s
	ActionToggleOrder     Action = "toggle_order"     // S
	ActionShuffle         Action = "shuffle"          // x
	ActionExport          Action = "export"           // e
	ActionPlay            Action = "play"             // p - export and hand to the player
)
