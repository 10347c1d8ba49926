// Package tuplemap implements a fixed-arity, tuple-keyed associative
// container, used for the LL(1) parse table (arity 2: variable, terminal)
// and the PDA transition table (arity 3: state, input symbol, stack top).
package tuplemap

import "github.com/dekarrin/carpfsm/internal/fsmerrors"

// Map is an associative container whose keys are tuples of a fixed arity.
// The zero value is not usable; create one with New.
type Map[V any] struct {
	arity int
	// nested maps each flattened key (see flatKey) to its stored value; it
	// is a single-level map, not one level per tuple position.
	nested map[string]interface{}
	// keys maps each flattened key back to the original tuple, so
	// Keys/Items can return the tuple elements without splitting the
	// flattened key.
	keys map[string][]string
}

// New creates an empty Map whose keys are arity-length tuples.
func New[V any](arity int) *Map[V] {
	if arity < 1 {
		fsmerrors.Violatef("tuplemap: arity must be at least 1, got %d", arity)
	}
	return &Map[V]{
		arity:  arity,
		nested: make(map[string]interface{}),
		keys:   make(map[string][]string),
	}
}

// Arity returns the fixed tuple length this Map was created with.
func (m *Map[V]) Arity() int {
	return m.arity
}

func (m *Map[V]) requireArity(key []string) {
	if len(key) != m.arity {
		fsmerrors.Violatef("tuplemap: key has arity %d, map requires %d", len(key), m.arity)
	}
}

func flatKey(key []string) string {
	// keys are compared/stored as a joined string with a separator unlikely
	// to appear in automaton state/symbol names; collisions would only
	// merge two distinct tuples, which Set/Get never need to detect since
	// every caller builds keys from disjoint concerns (state names never
	// contain the separator in this module's usage).
	s := ""
	for i, k := range key {
		if i > 0 {
			s += "\x1f"
		}
		s += k
	}
	return s
}

// Set assigns val to the tuple key. key must have exactly Arity() elements.
func (m *Map[V]) Set(key []string, val V) {
	m.requireArity(key)
	fk := flatKey(key)
	if _, had := m.nested[fk]; !had {
		m.keys[fk] = append([]string(nil), key...)
	}
	m.nested[fk] = val
}

// Get retrieves the value stored at key and whether it was present.
func (m *Map[V]) Get(key []string) (val V, ok bool) {
	m.requireArity(key)
	raw, had := m.nested[flatKey(key)]
	if !had {
		return val, false
	}
	return raw.(V), true
}

// Has returns whether key has an entry.
func (m *Map[V]) Has(key []string) bool {
	m.requireArity(key)
	_, had := m.nested[flatKey(key)]
	return had
}

// Keys returns every tuple key currently stored. No ordering is guaranteed.
func (m *Map[V]) Keys() [][]string {
	out := make([][]string, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, append([]string(nil), k...))
	}
	return out
}

// Items returns every (key, value) pair currently stored. No ordering is
// guaranteed.
func (m *Map[V]) Items() []struct {
	Key []string
	Val V
} {
	out := make([]struct {
		Key []string
		Val V
	}, 0, len(m.keys))
	for fk, k := range m.keys {
		out = append(out, struct {
			Key []string
			Val V
		}{Key: append([]string(nil), k...), Val: m.nested[fk].(V)})
	}
	return out
}

// Len returns the number of entries stored.
func (m *Map[V]) Len() int {
	return len(m.keys)
}

// Clear removes every entry, leaving the Map empty but retaining its arity.
func (m *Map[V]) Clear() {
	m.nested = make(map[string]interface{})
	m.keys = make(map[string][]string)
}

// Copy returns a deep copy of m. Unlike the Python original this is
// implemented to actually return the copy it builds.
func (m *Map[V]) Copy() *Map[V] {
	cp := New[V](m.arity)
	for fk, k := range m.keys {
		cp.keys[fk] = append([]string(nil), k...)
		cp.nested[fk] = m.nested[fk]
	}
	return cp
}
