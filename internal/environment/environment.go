// Package environment implements the evaluator's variable bindings as an
// assoc list, not a map: newest binding of a given name shadows all older
// ones, and the full history survives until the environment itself is
// discarded.
package environment

import (
	"sync"

	"mclisp/internal/value"
)

// Environment is a thread-safe assoc list of (name, value) bindings.
type Environment struct {
	mu       sync.RWMutex
	bindings []value.Binding // newest last; Lookup scans back-to-front
	parent   *Environment
}

// New creates an empty, top-level environment.
func New() *Environment {
	return &Environment{}
}

// Child creates a new environment whose lookups fall through to parent when
// a name isn't bound locally. Used for closure call frames.
func (e *Environment) Child() *Environment {
	return &Environment{parent: e}
}

// Lookup finds the innermost binding of name, newest first. It satisfies
// value.Environment.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	e.mu.RLock()
	for i := len(e.bindings) - 1; i >= 0; i-- {
		if e.bindings[i].Name == name {
			v := e.bindings[i].Value
			e.mu.RUnlock()
			return v, true
		}
	}
	parent := e.parent
	e.mu.RUnlock()
	if parent != nil {
		return parent.Lookup(name)
	}
	return nil, false
}

// Bind appends a new (name, value) pair to the environment. It deep-copies
// the value so that later mutation of the caller's copy cannot corrupt the
// binding. Bind never removes or overwrites an existing binding of the same
// name: the new one simply shadows it under newest-first lookup.
func (e *Environment) Bind(name string, v value.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings = append(e.bindings, value.Binding{Name: name, Value: value.DeepCopy(v)})
}

// Has reports whether name is bound locally or in an ancestor environment.
func (e *Environment) Has(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// Snapshot returns a copy of the assoc list as it stands, newest last,
// including the parent chain: ancestor bindings come first, then the local
// ones. Used by Clone, the env primitive, and the evaluator's pool
// collection.
func (e *Environment) Snapshot() []value.Binding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]value.Binding, len(e.bindings))
	copy(out, e.bindings)
	if e.parent == nil {
		return out
	}
	return append(e.parent.Snapshot(), out...)
}

// Clone returns a new, independent Environment with the same bindings.
func (e *Environment) Clone() *Environment {
	clone := New()
	clone.bindings = e.Snapshot()
	return clone
}

// FromBindings builds a fresh Environment seeded with the given bindings,
// oldest first, with no parent.
func FromBindings(bindings []value.Binding) *Environment {
	e := New()
	e.bindings = append([]value.Binding(nil), bindings...)
	return e
}
