package automaton

import (
	"sort"

	"github.com/dekarrin/carpfsm/internal/disjointset"
	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// RemoveUnreachable deletes every state (and the transitions naming it)
// that a DFS from Start cannot reach. If inPlace is false, dfa is left
// untouched and a fresh pruned copy is returned instead.
func (dfa DFA[E]) RemoveUnreachable(inPlace bool) DFA[E] {
	target := dfa
	if !inPlace {
		target = dfa.Copy()
	}

	if _, ok := target.states[target.Start]; !ok {
		fsmerrors.Violatef("cannot prune DFA with no start state set")
	}

	reached := fsmutil.NewStringSet()
	stack := fsmutil.Stack[string]{}
	stack.Push(target.Start)
	for !stack.Empty() {
		cur := stack.Pop()
		if reached.Has(cur) {
			continue
		}
		reached.Add(cur)
		for _, to := range target.states[cur].transitions {
			if !reached.Has(to) {
				stack.Push(to)
			}
		}
	}

	for name := range target.states {
		if !reached.Has(name) {
			delete(target.states, name)
		}
	}
	// also drop any transitions now pointing to a removed state (can't
	// happen since a transition target is always reached by definition of
	// the DFS above, but guards against manual corruption).
	for name, st := range target.states {
		for sym, to := range st.transitions {
			if !reached.Has(to) {
				delete(st.transitions, sym)
			}
		}
		target.states[name] = st
	}

	return target
}

// Minimize performs Hopcroft-style table-filling minimisation. It first
// prunes unreachable states, then builds a distinguishability table over
// all remaining state pairs, iterating to a fixed point, and finally
// collapses each equivalence class into a single renamed state q0, q1, ...
// in discovery order, with q0 being the class containing the original start
// state.
//
// Unlike Totalize/RemoveUnreachable, inPlace cannot actually mutate the
// receiver in place: the collapsed result lives in a brand new states map,
// and dfa is passed by value, so assigning to dfa's fields here never
// reaches the caller's variable. The distinguishability pass always runs
// against a pruned copy, and inPlace has no observable effect: the receiver
// is left unchanged either way, and the caller must use the returned DFA.
func (dfa DFA[E]) Minimize(inPlace bool) DFA[E] {
	pruned := dfa.RemoveUnreachable(false)

	names := fsmutil.OrderedKeys(pruned.states)
	n := len(names)
	idx := make(map[string]int, n)
	for i, name := range names {
		idx[name] = i
	}

	// distinguishable[i][j] for i<j
	distinguishable := make([][]bool, n)
	for i := range distinguishable {
		distinguishable[i] = make([]bool, n)
	}

	pairDistinguishable := func(i, j int) bool {
		if i > j {
			i, j = j, i
		}
		return distinguishable[i][j]
	}
	markPair := func(i, j int) {
		if i > j {
			i, j = j, i
		}
		distinguishable[i][j] = true
	}

	// initial marking: exactly one of the pair is accepting
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if pruned.states[names[i]].accepting != pruned.states[names[j]].accepting {
				markPair(i, j)
			}
		}
	}

	alphabet := fsmutil.OrderedKeys(pruned.alphabet)

	changed := true
	for changed {
		changed = false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if pairDistinguishable(i, j) {
					continue
				}
				for _, c := range alphabet {
					ti, oki := pruned.states[names[i]].transitions[c]
					tj, okj := pruned.states[names[j]].transitions[c]

					if oki != okj {
						markPair(i, j)
						changed = true
						break
					}
					if oki && okj && ti != tj {
						if pairDistinguishable(idx[ti], idx[tj]) {
							markPair(i, j)
							changed = true
							break
						}
					}
				}
			}
		}
	}

	forest := disjointset.New(names)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !pairDistinguishable(i, j) {
				forest.Union(names[i], names[j])
			}
		}
	}

	classes := forest.Classes()

	// Classes' class and within-class member order is map-iteration order
	// and therefore arbitrary; pin both down by idx (== names' order, i.e.
	// ascending order of state name) before numbering, so the same DFA
	// always minimises to the same state names.
	for _, members := range classes {
		sort.Slice(members, func(a, b int) bool { return idx[members[a]] < idx[members[b]] })
	}
	sort.Slice(classes, func(a, b int) bool { return idx[classes[a][0]] < idx[classes[b][0]] })

	// name classes q0, q1, ... in the order their representative appears in
	// `names`, with the class containing Start always numbered first.
	classOf := make(map[string]int, n)
	for ci, members := range classes {
		for _, m := range members {
			classOf[m] = ci
		}
	}
	startClass := classOf[pruned.Start]

	order := make([]int, 0, len(classes))
	order = append(order, startClass)
	for ci := range classes {
		if ci != startClass {
			order = append(order, ci)
		}
	}
	newName := make(map[int]string, len(order))
	for rank, ci := range order {
		newName[ci] = nameForIndex(rank)
	}

	result := DFA[E]{states: map[string]dfaState[E]{}, alphabet: pruned.alphabet}
	for _, ci := range order {
		members := classes[ci]
		rep := members[0]
		accepting := false
		for _, m := range members {
			if pruned.states[m].accepting {
				accepting = true
				break
			}
		}
		nn := newName[ci]
		result.AddState(nn, accepting)
		result.SetValue(nn, pruned.states[rep].value)
	}
	for _, ci := range order {
		members := classes[ci]
		rep := members[0]
		for sym, to := range pruned.states[rep].transitions {
			result.AddTransition(newName[ci], sym, newName[classOf[to]])
		}
	}
	result.Start = newName[startClass]

	if inPlace {
		dfa.states = result.states
		dfa.alphabet = result.alphabet
		dfa.Start = result.Start
		return dfa
	}
	return result
}

func nameForIndex(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "q" + string(digits[i])
	}
	// fall back to fmt-free manual itoa for larger indices
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return "q" + string(buf)
}
