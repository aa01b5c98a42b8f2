package keymap

import "slices"

// Resolver maps the keys of one pane to actions.
type Resolver struct {
	bindings []Binding
	actions  map[string]Action
}

// NewResolver creates a resolver from bindings. When a key appears in more
// than one binding, the last one wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		actions:  make(map[string]Action),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys that trigger action, in binding order. Keys
// taken over by a later binding are left out.
func (r *Resolver) KeysFor(action Action) []string {
	var keys []string
	for _, b := range r.bindings {
		if b.Action != action {
			continue
		}
		for _, key := range b.Keys {
			if r.actions[key] == action && !slices.Contains(keys, key) {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// Help returns the bindings of context as they resolve here: each one
// lists only its live keys, and bindings left without any are dropped.
func (r *Resolver) Help(context string) []Binding {
	var out []Binding
	for _, b := range r.bindings {
		if b.Context != context {
			continue
		}
		var live []string
		for _, key := range b.Keys {
			if r.actions[key] == b.Action {
				live = append(live, key)
			}
		}
		if len(live) == 0 {
			continue
		}
		b.Keys = live
		out = append(out, b)
	}
	return out
}
