package automaton

import (
	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

const deadState = "__dead__"

// Totalize makes δ total over alphabet by adding at most one fresh sink
// state with a self-loop on every symbol of alphabet, and routing every
// previously-undefined (state, symbol) pair in alphabet to it. If inPlace is
// false, dfa is left untouched and a fresh totalised value is returned.
func (dfa DFA[E]) Totalize(inPlace bool, alphabet fsmutil.StringSet) DFA[E] {
	target := dfa
	if !inPlace {
		target = dfa.Copy()
	}

	needsDead := false
	for name := range target.states {
		st := target.states[name]
		for sym := range alphabet {
			if _, ok := st.transitions[sym]; !ok {
				needsDead = true
			}
		}
	}

	if needsDead {
		if _, ok := target.states[deadState]; !ok {
			target.AddState(deadState, false)
			for sym := range alphabet {
				target.AddSymbol(sym)
				target.states[deadState].transitions[sym] = deadState
			}
		}
		for name := range target.states {
			if name == deadState {
				continue
			}
			st := target.states[name]
			for sym := range alphabet {
				if _, ok := st.transitions[sym]; !ok {
					st.transitions[sym] = deadState
				}
			}
			target.states[name] = st
		}
	}

	for sym := range alphabet {
		target.AddSymbol(sym)
	}

	return target
}

// productStateName encodes a pair of source states as a single DFA state
// name for the product automaton. It is purely a presentation detail (see
// the note on string-concatenated composite names); callers that need the
// original pair back should track it themselves, e.g. via a value on the
// resulting state.
func productStateName(a, b string) string {
	return a + "," + b
}

// ProductPair records the two source states a product DFA state was built
// from.
type ProductPair struct {
	A, B string
}

// Product builds the product automaton of a1 and a2 over the union of their
// alphabets, after totalising both over that union. Every reachable pair of
// states becomes one state of the result, carrying the originating pair as
// its value; the caller selects final states via accept.
func Product[E1, E2 any](a1 DFA[E1], a2 DFA[E2], accept func(aAccepting, bAccepting bool) bool) DFA[ProductPair] {
	union := a1.Alphabet().Union(a2.Alphabet()).(fsmutil.StringSet)

	t1 := a1.Totalize(false, union)
	t2 := a2.Totalize(false, union)

	if _, ok := t1.states[t1.Start]; !ok {
		fsmerrors.Violatef("product: first automaton has no start state set")
	}
	if _, ok := t2.states[t2.Start]; !ok {
		fsmerrors.Violatef("product: second automaton has no start state set")
	}

	result := DFA[ProductPair]{states: map[string]dfaState[ProductPair]{}}
	for sym := range union {
		result.AddSymbol(sym)
	}

	start := productStateName(t1.Start, t2.Start)
	result.Start = start

	visited := fsmutil.NewStringSet()
	queue := []ProductPair{{t1.Start, t2.Start}}
	addState := func(p ProductPair) {
		name := productStateName(p.A, p.B)
		if visited.Has(name) {
			return
		}
		visited.Add(name)
		acc := accept(t1.IsAccepting(p.A), t2.IsAccepting(p.B))
		result.AddState(name, acc)
		result.SetValue(name, p)
	}
	addState(ProductPair{t1.Start, t2.Start})

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		fromName := productStateName(p.A, p.B)

		for sym := range union {
			na := t1.Next(p.A, sym)
			nb := t2.Next(p.B, sym)
			if na == "" || nb == "" {
				continue
			}
			np := ProductPair{na, nb}
			toName := productStateName(na, nb)
			if !visited.Has(toName) {
				addState(np)
				queue = append(queue, np)
			}
			result.AddTransition(fromName, sym, toName)
		}
	}

	return result
}

// Union returns a DFA recognising L(a1) ∪ L(a2), minimised.
func Union[E1, E2 any](a1 DFA[E1], a2 DFA[E2]) DFA[ProductPair] {
	p := Product(a1, a2, func(x, y bool) bool { return x || y })
	return p.Minimize(false)
}

// Intersect returns a DFA recognising L(a1) ∩ L(a2), minimised.
func Intersect[E1, E2 any](a1 DFA[E1], a2 DFA[E2]) DFA[ProductPair] {
	p := Product(a1, a2, func(x, y bool) bool { return x && y })
	return p.Minimize(false)
}

// Difference returns a DFA recognising L(a1) ∖ L(a2), minimised.
func Difference[E1, E2 any](a1 DFA[E1], a2 DFA[E2]) DFA[ProductPair] {
	p := Product(a1, a2, func(x, y bool) bool { return x && !y })
	return p.Minimize(false)
}

// Complement returns a DFA recognising Σ* ∖ L(a), over alphabet, minimised.
// It totalises a over alphabet (so every previously-undefined transition
// routes to the dead state, which becomes accepting), then flips every
// final/non-final state.
func Complement[E any](a DFA[E], alphabet fsmutil.StringSet) DFA[E] {
	total := a.Totalize(false, alphabet)

	result := DFA[E]{states: map[string]dfaState[E]{}, alphabet: total.alphabet, Start: total.Start}
	for name, st := range total.states {
		cp := st.copy()
		cp.accepting = !st.accepting
		result.states[name] = cp
	}
	return result.Minimize(false)
}

// IsEmpty returns whether L(a) = ∅: whether any accepting state is
// reachable from Start via a DFS over δ.
func IsEmpty[E any](a DFA[E]) bool {
	if _, ok := a.states[a.Start]; !ok {
		fsmerrors.Violatef("cannot test emptiness of DFA with no start state set")
	}

	visited := fsmutil.NewStringSet()
	stack := fsmutil.Stack[string]{}
	stack.Push(a.Start)
	for !stack.Empty() {
		cur := stack.Pop()
		if visited.Has(cur) {
			continue
		}
		visited.Add(cur)
		if a.IsAccepting(cur) {
			return false
		}
		for _, to := range a.states[cur].transitions {
			if !visited.Has(to) {
				stack.Push(to)
			}
		}
	}
	return true
}

// Equivalent returns whether L(a1) = L(a2): the symmetric difference
// automaton's language is empty. Two automata both recognising ∅ are
// correctly reported equivalent here; the original implementation this is
// grounded on additionally required a reachable accepting state on both
// sides, which misclassifies that degenerate case, and is not reproduced.
func Equivalent[E1, E2 any](a1 DFA[E1], a2 DFA[E2]) bool {
	union := a1.Alphabet().Union(a2.Alphabet()).(fsmutil.StringSet)
	t1 := a1.Totalize(false, union)
	t2 := a2.Totalize(false, union)

	symDiff := Product(t1, t2, func(x, y bool) bool { return x != y })
	return IsEmpty(symDiff)
}
