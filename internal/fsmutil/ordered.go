package fsmutil

import "sort"

// OrderedKeys returns the keys of m sorted ascending. Used wherever a
// deterministic iteration order over a map is needed for output or
// comparison, e.g. printing an LL(1) table or a set of FIRST/FOLLOW symbols.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Alphabetized returns a sorted copy of sl.
func Alphabetized[E ~string](sl []E) []E {
	cp := make([]E, len(sl))
	copy(cp, sl)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return cp
}
