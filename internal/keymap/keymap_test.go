//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectNonEmpty  bool
		expectMinLength int
	}{
		{"global context", "global", true, 3},
		{"browser context", "browser", true, 5},
		{"playlist context", "playlist", true, 5},
		{"unknown context returns empty", "unknown", false, 0},
		{"empty context returns empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectNonEmpty && len(result) == 0 {
				t.Errorf("ByContext(%q) returned empty, expected non-empty", tt.context)
			}

			if !tt.expectNonEmpty && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}

			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.expectMinLength)
			}

			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestAll_NoDuplicateKeysWithinContext(t *testing.T) {
	seen := make(map[string]map[string]Action)
	for _, b := range All {
		if seen[b.Context] == nil {
			seen[b.Context] = make(map[string]Action)
		}
		for _, key := range b.Keys {
			if prev, ok := seen[b.Context][key]; ok {
				t.Errorf("key %q bound twice in %q: %s and %s", key, b.Context, prev, b.Action)
			}
			seen[b.Context][key] = b.Action
		}
	}
}

func TestAll_ContextsDoNotShadowGlobal(t *testing.T) {
	global := make(map[string]bool)
	for _, b := range ByContext("global") {
		for _, key := range b.Keys {
			global[key] = true
		}
	}
	for _, b := range All {
		if b.Context == "global" {
			continue
		}
		for _, key := range b.Keys {
			if global[key] {
				t.Errorf("%s key %q shadows a global binding", b.Context, key)
			}
		}
	}
}

func TestAll_HaveDescriptions(t *testing.T) {
	for _, b := range All {
		if b.Description == "" || len(b.Keys) == 0 || b.Action == "" {
			t.Errorf("incomplete binding: %+v", b)
		}
	}
}
