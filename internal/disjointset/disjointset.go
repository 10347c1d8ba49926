// Package disjointset implements a union-find forest over string elements,
// used by DFA minimisation to recover equivalence classes from a
// distinguishability table.
package disjointset

import "github.com/dekarrin/carpfsm/internal/fsmerrors"

// Forest is a disjoint-set forest over a fixed universe of string elements.
// The zero value is not usable; create one with New.
type Forest struct {
	parent map[string]string
	rank   map[string]int
}

// New builds a Forest where every element in elems is its own singleton set
// with rank 1.
func New(elems []string) *Forest {
	f := &Forest{
		parent: make(map[string]string, len(elems)),
		rank:   make(map[string]int, len(elems)),
	}
	for _, e := range elems {
		f.parent[e] = e
		f.rank[e] = 1
	}
	return f
}

func (f *Forest) requireMember(x string) {
	if _, ok := f.parent[x]; !ok {
		fsmerrors.Violatef("disjointset: %q is not a member of this forest", x)
	}
}

// Find returns the representative (root) of the set containing x, collapsing
// every node visited along the way directly onto that root. It panics with a
// ContractViolation if x was never added to the forest.
func (f *Forest) Find(x string) string {
	f.requireMember(x)

	root := x
	for f.parent[root] != root {
		root = f.parent[root]
	}

	// second pass: relink every node on the path directly to root.
	cur := x
	for f.parent[cur] != root {
		next := f.parent[cur]
		f.parent[cur] = root
		cur = next
	}

	return root
}

// Union merges the sets containing a and b. The set with the higher rank
// absorbs the other; on a tie, a's root absorbs b's root and its rank is
// incremented. It panics with a ContractViolation if a or b was never added
// to the forest.
func (f *Forest) Union(a, b string) {
	rootA := f.Find(a)
	rootB := f.Find(b)

	if rootA == rootB {
		return
	}

	if f.rank[rootA] >= f.rank[rootB] {
		f.parent[rootB] = rootA
		if f.rank[rootA] == f.rank[rootB] {
			f.rank[rootA]++
		}
	} else {
		f.parent[rootA] = rootB
	}
}

// Classes returns the partition of the universe as a list of element groups,
// one per equivalence class, each sharing a common root. The order of
// classes and of elements within a class is not guaranteed.
func (f *Forest) Classes() [][]string {
	byRoot := make(map[string][]string)
	for x := range f.parent {
		root := f.Find(x)
		byRoot[root] = append(byRoot[root], x)
	}

	classes := make([][]string, 0, len(byRoot))
	for _, members := range byRoot {
		classes = append(classes, members)
	}
	return classes
}
