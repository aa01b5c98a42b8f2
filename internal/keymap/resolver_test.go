//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionShuffle, []string{"x"}, "Shuffle", "playlist"},
		{ActionMoveUp, []string{"k", "up"}, "Move up", "browser"},
		{ActionMoveDown, []string{"j", "down"}, "Move down", "browser"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"x", ActionShuffle},
		{"k", ActionMoveUp},
		{"up", ActionMoveUp},
		{"j", ActionMoveDown},
		{"down", ActionMoveDown},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if result := r.Resolve(tt.key); result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver(ForContexts("browser", "playlist"))

	keys := r.KeysFor(ActionMoveUp)
	if !slices.Equal(keys, []string{"k", "up"}) {
		t.Errorf("KeysFor(move_up) = %v, want deduplicated [k up]", keys)
	}
	if keys := r.KeysFor("nope"); len(keys) != 0 {
		t.Errorf("KeysFor(unknown) = %v, want empty", keys)
	}
}

func TestResolver_KeysForSkipsShadowedKeys(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionMoveRight, []string{"l", "enter"}, "Open", "browser"},
		{ActionExport, []string{"enter"}, "Export", "playlist"},
	})
	if keys := r.KeysFor(ActionMoveRight); !slices.Equal(keys, []string{"l"}) {
		t.Errorf("KeysFor(move_right) = %v, want [l]", keys)
	}
	if keys := r.KeysFor(ActionExport); !slices.Equal(keys, []string{"enter"}) {
		t.Errorf("KeysFor(export) = %v, want [enter]", keys)
	}
}

func TestResolver_Help(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q"}, "Quit", "global"},
		{ActionAdd, []string{"a"}, "Add", "browser"},
		{ActionClear, []string{"a"}, "Clear", "browser"},
	})

	help := r.Help("browser")
	if len(help) != 1 {
		t.Fatalf("Help(browser) = %v, want one binding", help)
	}
	if help[0].Action != ActionClear || !slices.Equal(help[0].Keys, []string{"a"}) {
		t.Errorf("Help(browser)[0] = %+v, want clear on a", help[0])
	}
	if help := r.Help("global"); len(help) != 1 || help[0].Action != ActionQuit {
		t.Errorf("Help(global) = %v", help)
	}
	if help := r.Help("playlist"); len(help) != 0 {
		t.Errorf("Help(playlist) = %v, want none", help)
	}
}

func TestResolver_LaterContextWins(t *testing.T) {
	bindings := []Binding{
		{ActionAdd, []string{"a"}, "Add", "browser"},
		{ActionRemove, []string{"a"}, "Remove", "playlist"},
	}
	if got := NewResolver(bindings).Resolve("a"); got != ActionRemove {
		t.Errorf("Resolve(a) = %q, want %q", got, ActionRemove)
	}
}

func TestResolver_AppKeys(t *testing.T) {
	browser := NewResolver(ForContexts("global", "browser"))
	playlist := NewResolver(ForContexts("global", "playlist"))

	tests := []struct {
		r    *Resolver
		key  string
		want Action
	}{
		{browser, "enter", ActionMoveRight},
		{browser, "l", ActionMoveRight},
		{browser, "h", ActionMoveLeft},
		{browser, "a", ActionAdd},
		{browser, "A", ActionAddDirectory},
		{browser, "t", ActionToggleTree},
		{browser, "r", ActionRescan},
		{playlist, "d", ActionRemove},
		{playlist, "D", ActionRemoveDirectory},
		{playlist, "s", ActionCycleSort},
		{playlist, "S", ActionToggleOrder},
		{playlist, "x", ActionShuffle},
		{playlist, "e", ActionExport},
		{playlist, "p", ActionPlay},
		{playlist, "q", ActionQuit},
	}
	for _, tt := range tests {
		if got := tt.r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
