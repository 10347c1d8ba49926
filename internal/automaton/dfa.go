package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// DFA is a deterministic finite automaton (Q, Σ, δ, q0, F). Every state
// carries a generic value E for callers that want to attach extra data (used
// by subset construction, whose DFA states are sets of NFA states).
//
// The zero value is an empty DFA with no states and is not directly usable
// until at least a start state is added; use AddState/AddTransition/SetStart
// to build one up incrementally.
type DFA[E any] struct {
	states   map[string]dfaState[E]
	alphabet map[string]bool
	Start    string
}

// AddState adds a new state named name to the DFA. Has no effect if the
// state already exists.
func (dfa *DFA[E]) AddState(name string, accepting bool) {
	if dfa.states == nil {
		dfa.states = map[string]dfaState[E]{}
	}
	if _, ok := dfa.states[name]; ok {
		return
	}
	dfa.states[name] = dfaState[E]{name: name, transitions: map[string]string{}, accepting: accepting}
}

// AddSymbol adds sym to the DFA's alphabet Σ. Has no effect if already
// present.
func (dfa *DFA[E]) AddSymbol(sym string) {
	if len(sym) != 1 {
		panic((&fsmerrors.ConstructionError{Kind: fsmerrors.MalformedSymbol, Msg: "alphabet symbols must be exactly one character", Entity: []string{sym}}).Error())
	}
	if dfa.alphabet == nil {
		dfa.alphabet = map[string]bool{}
	}
	dfa.alphabet[sym] = true
}

// Alphabet returns the set of symbols in Σ.
func (dfa DFA[E]) Alphabet() fsmutil.StringSet {
	s := fsmutil.NewStringSet()
	for a := range dfa.alphabet {
		s.Add(a)
	}
	return s
}

// AddTransition adds δ(from, input) = to. Panics if from or to do not exist
// as states, or if from already has a transition on input to a different
// state (δ must remain a function); re-adding the same transition is a no-op.
func (dfa *DFA[E]) AddTransition(from, input, to string) {
	fromSt, ok := dfa.states[from]
	if !ok {
		fsmerrors.Violatef("add transition from nonexistent state %q", from)
	}
	if _, ok := dfa.states[to]; !ok {
		fsmerrors.Violatef("add transition to nonexistent state %q", to)
	}
	if existing, had := fromSt.transitions[input]; had && existing != to {
		fsmerrors.Violatef("state %q already has a transition on %q (to %q)", from, input, existing)
	}
	fromSt.transitions[input] = to
	dfa.states[from] = fromSt
	dfa.AddSymbol(input)
}

// States returns the names of every state in Q.
func (dfa DFA[E]) States() fsmutil.StringSet {
	s := fsmutil.NewStringSet()
	for name := range dfa.states {
		s.Add(name)
	}
	return s
}

// IsAccepting returns whether state is in F. Returns false for a nonexistent
// state.
func (dfa DFA[E]) IsAccepting(state string) bool {
	s, ok := dfa.states[state]
	return ok && s.accepting
}

// Next returns δ(from, input), or "" if from doesn't exist or δ is undefined
// at (from, input).
func (dfa DFA[E]) Next(from, input string) string {
	s, ok := dfa.states[from]
	if !ok {
		return ""
	}
	return s.transitions[input]
}

// SetValue attaches v to state. Panics if state does not exist.
func (dfa *DFA[E]) SetValue(state string, v E) {
	s, ok := dfa.states[state]
	if !ok {
		fsmerrors.Violatef("set value on nonexistent state %q", state)
	}
	s.value = v
	dfa.states[state] = s
}

// GetValue returns the value attached to state. Panics if state does not
// exist.
func (dfa DFA[E]) GetValue(state string) E {
	s, ok := dfa.states[state]
	if !ok {
		fsmerrors.Violatef("get value on nonexistent state %q", state)
	}
	return s.value
}

// Run simulates w against the DFA starting at q0, consuming left to right.
// It rejects immediately (returns false) if w contains any symbol outside Σ,
// or if δ is undefined at some step; otherwise it accepts iff the state
// reached after consuming all of w is in F.
func (dfa DFA[E]) Run(w string) bool {
	if _, ok := dfa.states[dfa.Start]; !ok {
		fsmerrors.Violatef("cannot run DFA with no start state set")
	}

	cur := dfa.Start
	for _, r := range w {
		sym := string(r)
		if !dfa.alphabet[sym] {
			return false
		}
		next := dfa.Next(cur, sym)
		if next == "" {
			return false
		}
		cur = next
	}
	return dfa.IsAccepting(cur)
}

// TraceStep is one step of a RunVerbose trace.
type TraceStep struct {
	Pre   string
	Input string
	Next  string
}

// RunVerbose is like Run but also returns a step-by-step trace of
// (pre-state, input symbol, next-state), mirroring the original
// implementation's verbose run mode. The trace stops at the first undefined
// transition or out-of-alphabet symbol; the boolean result follows Run's
// rules.
func (dfa DFA[E]) RunVerbose(w string) (accepted bool, trace []TraceStep) {
	if _, ok := dfa.states[dfa.Start]; !ok {
		fsmerrors.Violatef("cannot run DFA with no start state set")
	}

	cur := dfa.Start
	for _, r := range w {
		sym := string(r)
		if !dfa.alphabet[sym] {
			trace = append(trace, TraceStep{Pre: cur, Input: sym, Next: ""})
			return false, trace
		}
		next := dfa.Next(cur, sym)
		trace = append(trace, TraceStep{Pre: cur, Input: sym, Next: next})
		if next == "" {
			return false, trace
		}
		cur = next
	}
	return dfa.IsAccepting(cur), trace
}

// Validate checks structural invariants: every non-start state must be
// reachable by some transition, every transition must target an existing
// state, and Start must name an existing state. Returns an error describing
// every violation found, or nil if none.
func (dfa DFA[E]) Validate() error {
	var errs []string

	for name := range dfa.states {
		if name == dfa.Start {
			continue
		}
		reachable := false
		for other := range dfa.states {
			if other == name {
				continue
			}
			for _, to := range dfa.states[other].transitions {
				if to == name {
					reachable = true
					break
				}
			}
			if reachable {
				break
			}
		}
		if !reachable {
			errs = append(errs, fmt.Sprintf("no transitions to non-start state %q", name))
		}
	}

	for name, st := range dfa.states {
		for sym, to := range st.transitions {
			if _, ok := dfa.states[to]; !ok {
				errs = append(errs, fmt.Sprintf("state %q transitions on %q to non-existing state %q", name, sym, to))
			}
		}
	}

	if _, ok := dfa.states[dfa.Start]; !ok {
		errs = append(errs, fmt.Sprintf("start state does not exist: %q", dfa.Start))
	}

	if len(errs) > 0 {
		return fmt.Errorf(strings.Join(errs, "\n"))
	}
	return nil
}

// Copy returns a deep, independently-owned duplicate of dfa.
func (dfa DFA[E]) Copy() DFA[E] {
	cp := DFA[E]{
		Start:    dfa.Start,
		states:   make(map[string]dfaState[E], len(dfa.states)),
		alphabet: make(map[string]bool, len(dfa.alphabet)),
	}
	for k, v := range dfa.states {
		cp.states[k] = v.copy()
	}
	for k, v := range dfa.alphabet {
		cp.alphabet[k] = v
	}
	return cp
}

// NumberStates renames every state to q0, q1, ... in ascending order of
// their current names, with q0 guaranteed to be the (possibly renamed)
// start state.
func (dfa *DFA[E]) NumberStates() {
	if _, ok := dfa.states[dfa.Start]; !ok {
		fsmerrors.Violatef("cannot number states of DFA with no start state set")
	}

	names := fsmutil.OrderedKeys(dfa.states)
	ordered := make([]string, 0, len(names))
	ordered = append(ordered, dfa.Start)
	for _, n := range names {
		if n != dfa.Start {
			ordered = append(ordered, n)
		}
	}

	mapping := make(map[string]string, len(ordered))
	for i, n := range ordered {
		mapping[n] = fmt.Sprintf("q%d", i)
	}

	fresh := &DFA[E]{states: make(map[string]dfaState[E]), alphabet: dfa.alphabet}
	for _, n := range ordered {
		old := dfa.states[n]
		fresh.AddState(mapping[n], old.accepting)
		fresh.SetValue(mapping[n], old.value)
	}
	for _, n := range ordered {
		old := dfa.states[n]
		for sym, to := range old.transitions {
			fresh.AddTransition(mapping[n], sym, mapping[to])
		}
	}
	fresh.Start = mapping[dfa.Start]

	dfa.states = fresh.states
	dfa.Start = fresh.Start
}

func (dfa DFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", dfa.Start))
	names := fsmutil.OrderedKeys(dfa.states)
	for i, n := range names {
		sb.WriteString("\n\t")
		sb.WriteString(dfa.states[n].String())
		if i+1 < len(names) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}
