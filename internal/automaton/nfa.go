package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// NFA is a nondeterministic finite automaton with spontaneous (ε)
// transitions: (Q, Σ, δ, q0, F, ε). δ maps a source state and symbol
// (Epsilon included) to a set of target states.
type NFA[E any] struct {
	states   map[string]nfaState[E]
	alphabet map[string]bool
	Start    string
}

// AddState adds a new state named name. Has no effect if it already exists.
func (nfa *NFA[E]) AddState(name string, accepting bool) {
	if nfa.states == nil {
		nfa.states = map[string]nfaState[E]{}
	}
	if _, ok := nfa.states[name]; ok {
		return
	}
	nfa.states[name] = nfaState[E]{name: name, transitions: map[string][]string{}, accepting: accepting}
}

// AddTransition adds one edge from -> to labelled input (Epsilon allowed).
// Multiple edges for the same (from, input) pair are permitted; this is
// what makes the automaton nondeterministic. Panics if from or to do not
// exist.
func (nfa *NFA[E]) AddTransition(from, input, to string) {
	fromSt, ok := nfa.states[from]
	if !ok {
		fsmerrors.Violatef("add transition from nonexistent state %q", from)
	}
	if _, ok := nfa.states[to]; !ok {
		fsmerrors.Violatef("add transition to nonexistent state %q", to)
	}
	for _, existing := range fromSt.transitions[input] {
		if existing == to {
			return
		}
	}
	fromSt.transitions[input] = append(fromSt.transitions[input], to)
	nfa.states[from] = fromSt
	if input != Epsilon {
		if nfa.alphabet == nil {
			nfa.alphabet = map[string]bool{}
		}
		nfa.alphabet[input] = true
	}
}

// SetValue attaches v to state. Panics if state does not exist.
func (nfa *NFA[E]) SetValue(state string, v E) {
	s, ok := nfa.states[state]
	if !ok {
		fsmerrors.Violatef("set value on nonexistent state %q", state)
	}
	s.value = v
	nfa.states[state] = s
}

// GetValue returns the value attached to state. Panics if state does not
// exist.
func (nfa NFA[E]) GetValue(state string) E {
	s, ok := nfa.states[state]
	if !ok {
		fsmerrors.Violatef("get value on nonexistent state %q", state)
	}
	return s.value
}

// States returns the names of every state in Q.
func (nfa NFA[E]) States() fsmutil.StringSet {
	s := fsmutil.NewStringSet()
	for name := range nfa.states {
		s.Add(name)
	}
	return s
}

// AcceptingStates returns the names of every state in F.
func (nfa NFA[E]) AcceptingStates() fsmutil.StringSet {
	s := fsmutil.NewStringSet()
	for name, st := range nfa.states {
		if st.accepting {
			s.Add(name)
		}
	}
	return s
}

// InputSymbols returns Σ, inferred from every non-ε transition added so far.
func (nfa NFA[E]) InputSymbols() fsmutil.StringSet {
	s := fsmutil.NewStringSet()
	for sym := range nfa.alphabet {
		s.Add(sym)
	}
	return s
}

// EpsilonClosure returns the smallest set containing s that is closed under
// ε-transitions.
func (nfa NFA[E]) EpsilonClosure(s string) fsmutil.StringSet {
	if _, ok := nfa.states[s]; !ok {
		return fsmutil.NewStringSet()
	}

	closure := fsmutil.NewStringSet()
	stack := fsmutil.Stack[string]{}
	stack.Push(s)

	for !stack.Empty() {
		cur := stack.Pop()
		if closure.Has(cur) {
			continue
		}
		closure.Add(cur)
		for _, to := range nfa.states[cur].transitions[Epsilon] {
			if !closure.Has(to) {
				stack.Push(to)
			}
		}
	}
	return closure
}

// EpsilonClosureOfSet is the union of EpsilonClosure over every state in X.
func (nfa NFA[E]) EpsilonClosureOfSet(X fsmutil.ISet[string]) fsmutil.StringSet {
	result := fsmutil.NewStringSet()
	for _, s := range X.Elements() {
		result.AddAll(nfa.EpsilonClosure(s))
	}
	return result
}

// Move returns ⋃ δ(s, a) for s ∈ X: the set of states reachable with one
// transition on a from some state in X.
func (nfa NFA[E]) Move(X fsmutil.ISet[string], a string) fsmutil.StringSet {
	result := fsmutil.NewStringSet()
	for _, s := range X.Elements() {
		st, ok := nfa.states[s]
		if !ok {
			continue
		}
		for _, to := range st.transitions[a] {
			result.Add(to)
		}
	}
	return result
}

// Run simulates w against the NFA: start with ε-closure({q0}), and for each
// input symbol compute ε-closure(move(·, c)); accepts iff the final set
// intersects F. Rejects immediately if w contains a symbol outside Σ.
func (nfa NFA[E]) Run(w string) bool {
	if _, ok := nfa.states[nfa.Start]; !ok {
		fsmerrors.Violatef("cannot run NFA with no start state set")
	}

	cur := nfa.EpsilonClosure(nfa.Start)
	for _, r := range w {
		sym := string(r)
		if !nfa.alphabet[sym] {
			return false
		}
		cur = nfa.EpsilonClosureOfSet(nfa.Move(cur, sym))
		if cur.Empty() {
			return false
		}
	}
	return cur.Any(func(s string) bool { return nfa.states[s].accepting })
}

// ToDFA performs subset construction (dragon-book algorithm 3.20). DFA
// states are named s0, s1, ... in discovery order, each carrying the set of
// underlying NFA states (by value) it was built from. Transitions on a
// symbol that lead to the empty set are omitted rather than routed to an
// explicit dead state, and DFA.Next/Run already treat a missing transition
// as rejection, so this is consistent with simulation without any special
// casing.
func (nfa NFA[E]) ToDFA() DFA[fsmutil.SVSet[E]] {
	symbols := nfa.InputSymbols()

	dStart := nfa.EpsilonClosure(nfa.Start)

	type discovered struct {
		name string
		set  fsmutil.StringSet
	}

	byKey := map[string]discovered{}
	order := []string{}

	keyOf := func(s fsmutil.StringSet) string { return s.StringOrdered() }

	nameFor := func(s fsmutil.StringSet) string {
		k := keyOf(s)
		if d, ok := byKey[k]; ok {
			return d.name
		}
		name := fmt.Sprintf("s%d", len(order))
		byKey[k] = discovered{name: name, set: s}
		order = append(order, k)
		return name
	}

	dfa := DFA[fsmutil.SVSet[E]]{states: map[string]dfaState[fsmutil.SVSet[E]]{}}

	startName := nameFor(dStart)
	dfa.Start = startName

	marked := fsmutil.NewStringSet()
	for {
		var unmarkedKey string
		found := false
		for _, k := range order {
			if !marked.Has(byKey[k].name) {
				unmarkedKey = k
				found = true
				break
			}
		}
		if !found {
			break
		}

		d := byKey[unmarkedKey]
		marked.Add(d.name)

		values := fsmutil.NewSVSet[E]()
		for _, nfaState := range d.set.Elements() {
			values.Set(nfaState, nfa.GetValue(nfaState))
		}

		accepting := d.set.Any(func(s string) bool { return nfa.states[s].accepting })
		dfa.AddState(d.name, accepting)
		dfa.SetValue(d.name, values)

		for _, a := range symbols.Elements() {
			u := nfa.EpsilonClosureOfSet(nfa.Move(d.set, a))
			if u.Empty() {
				continue
			}
			uName := nameFor(u)
			if _, ok := dfa.states[uName]; !ok {
				// ensure state exists before adding a transition to it; it
				// will be filled in fully when its turn in the worklist
				// comes, but AddTransition requires it to already be
				// present.
				dfa.AddState(uName, false)
			}
			dfa.AddTransition(d.name, a, uName)
		}
	}

	return dfa
}

// Join combines nfa and other into a single NFA, namespacing every state as
// "1:origName" (from nfa) or "2:origName" (from other), then linking them
// via the given triples (from-original-name, symbol, to-original-name), and
// finally applying addAccept/removeAccept (given in the post-join
// "N:name" naming scheme) to adjust which states accept. The result's start
// state is "1:"+nfa.Start. Neither input is modified.
func (nfa NFA[E]) Join(other NFA[E], fromToOther, otherToFrom [][3]string, addAccept, removeAccept []string) NFA[E] {
	joined := NFA[E]{states: map[string]nfaState[E]{}, Start: "1:" + nfa.Start}

	addSet := fsmutil.StringSetOf(addAccept)
	removeSet := fsmutil.StringSetOf(removeAccept)

	copyIn := func(src NFA[E], prefix string) {
		for name, st := range src.states {
			newName := prefix + name
			accept := st.accepting
			if addSet.Has(newName) {
				accept = true
			} else if removeSet.Has(newName) {
				accept = false
			}
			joined.AddState(newName, accept)
			joined.SetValue(newName, st.value)
		}
		for name, st := range src.states {
			from := prefix + name
			for sym, tos := range st.transitions {
				for _, to := range tos {
					joined.AddTransition(from, sym, prefix+to)
				}
			}
		}
	}

	copyIn(nfa, "1:")
	copyIn(other, "2:")

	for _, link := range fromToOther {
		joined.AddTransition("1:"+link[0], link[1], "2:"+link[2])
	}
	for _, link := range otherToFrom {
		joined.AddTransition("2:"+link[0], link[1], "1:"+link[2])
	}

	return joined
}

// Copy returns a deep, independently-owned duplicate of nfa.
func (nfa NFA[E]) Copy() NFA[E] {
	cp := NFA[E]{Start: nfa.Start, states: make(map[string]nfaState[E], len(nfa.states)), alphabet: make(map[string]bool, len(nfa.alphabet))}
	for k, v := range nfa.states {
		cp.states[k] = v.copy()
	}
	for k, v := range nfa.alphabet {
		cp.alphabet[k] = v
	}
	return cp
}

// NumberStates renames every state to s0, s1, ... with s0 guaranteed to be
// the (possibly renamed) start state.
func (nfa *NFA[E]) NumberStates() {
	if _, ok := nfa.states[nfa.Start]; !ok {
		fsmerrors.Violatef("cannot number states of NFA with no start state set")
	}

	names := fsmutil.OrderedKeys(nfa.states)
	ordered := make([]string, 0, len(names))
	ordered = append(ordered, nfa.Start)
	for _, n := range names {
		if n != nfa.Start {
			ordered = append(ordered, n)
		}
	}

	mapping := make(map[string]string, len(ordered))
	for i, n := range ordered {
		mapping[n] = fmt.Sprintf("s%d", i)
	}

	fresh := &NFA[E]{states: make(map[string]nfaState[E])}
	for _, n := range ordered {
		old := nfa.states[n]
		fresh.AddState(mapping[n], old.accepting)
		fresh.SetValue(mapping[n], old.value)
	}
	for _, n := range ordered {
		old := nfa.states[n]
		for sym, tos := range old.transitions {
			for _, to := range tos {
				fresh.AddTransition(mapping[n], sym, mapping[to])
			}
		}
	}
	fresh.Start = mapping[nfa.Start]

	nfa.states = fresh.states
	nfa.Start = fresh.Start
}

func (nfa NFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", nfa.Start))
	names := fsmutil.OrderedKeys(nfa.states)
	for i, n := range names {
		shape := "circle"
		if nfa.states[n].accepting {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("\n\t(%s:%s %v)", n, shape, nfa.states[n].transitions))
		if i+1 < len(names) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}
