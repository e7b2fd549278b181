package lang

import (
	"slices"
)

// Env is one frame of the environment chain: the bindings introduced at a
// single scope plus a reference to the enclosing frame. Lookup walks the
// chain from innermost to outermost.
//
// The top-level frame is mutated in place by top-level bindings (rebinding
// replaces the entry). Frames created for lambda applications are never
// mutated after creation, so many closures may safely share one parent.
type Env struct {
	vars   map[string]*Thunk
	parent *Env
}

// NewEnv creates an empty frame whose lookups fall through to parent.
// A nil parent creates a root frame.
func NewEnv(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]*Thunk),
		parent: parent,
	}
}

// Bind stores a thunk under name in this frame, replacing any previous
// binding with the same name in this frame only.
func (e *Env) Bind(name string, t *Thunk) {
	e.vars[name] = t
}

// Lookup resolves name by walking the frame chain outward.
func (e *Env) Lookup(name string) (*Thunk, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if t, ok := frame.vars[name]; ok {
			return t, true
		}
	}

	return nil, false
}

// Names returns the sorted names bound across the whole chain, innermost
// shadowing outermost. Used for REPL completion.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})

	for frame := e; frame != nil; frame = frame.parent {
		for name := range frame.vars {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
