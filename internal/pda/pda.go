// Package pda implements pushdown automata with nondeterministic
// configuration-DFS acceptance by final state and by empty stack, per
// spec.md §4.7.
package pda

import (
	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
	"github.com/dekarrin/carpfsm/internal/tuplemap"
)

// Epsilon is the sentinel symbol for a spontaneous move (no input consumed)
// or an empty push (nothing placed on the stack).
const Epsilon = "ε"

// move is one entry of δ: on the matched (state, input-or-ε, stack-top) key,
// go to Target and push Push onto the stack character by character, left to
// right, so the last character of Push ends up on top. Push == Epsilon
// pushes nothing.
type move struct {
	Target string
	Push   string
}

// PDA is a pushdown automaton (Q, Σ, Γ, δ, q0, Z0, F). δ is stored as a
// tuple-keyed map from (state, input symbol or ε, stack-top symbol) to the
// set of applicable moves, mirroring spec.md's naming of the tuple-keyed
// map as the intended storage for this table.
type PDA struct {
	states       map[string]bool
	inputSymbols map[string]bool
	stackSymbols map[string]bool
	transitions  *tuplemap.Map[[]move]
	finalStates  map[string]bool

	Start            string
	StartStackSymbol string
}

// New creates an empty PDA whose initial configuration will be
// (start, 0, [startStackSymbol]).
func New(start, startStackSymbol string) *PDA {
	p := &PDA{
		states:           map[string]bool{},
		inputSymbols:     map[string]bool{},
		stackSymbols:     map[string]bool{},
		transitions:      tuplemap.New[[]move](3),
		finalStates:      map[string]bool{},
		Start:            start,
		StartStackSymbol: startStackSymbol,
	}
	p.states[start] = true
	p.stackSymbols[startStackSymbol] = true
	return p
}

// AddState adds name to Q.
func (p *PDA) AddState(name string) {
	p.states[name] = true
}

// AddInputSymbol adds sym to Σ.
func (p *PDA) AddInputSymbol(sym string) {
	p.inputSymbols[sym] = true
}

// AddStackSymbol adds sym to Γ.
func (p *PDA) AddStackSymbol(sym string) {
	p.stackSymbols[sym] = true
}

// SetFinalStates replaces F, the set of states used by final-state
// acceptance. Every name must already have been added via AddState.
func (p *PDA) SetFinalStates(names ...string) {
	p.finalStates = map[string]bool{}
	for _, n := range names {
		if !p.states[n] {
			fsmerrors.Violatef("set final state to nonexistent state %q", n)
		}
		p.finalStates[n] = true
	}
}

// AddTransition adds (target, push) to δ(state, inputSym, top). inputSym may
// be Epsilon for a spontaneous move; push may be Epsilon to pop without
// replacing. Panics if state, target, or top are not declared, or if
// inputSym/push name an undeclared symbol.
func (p *PDA) AddTransition(state, inputSym, top, target, push string) {
	if !p.states[state] {
		fsmerrors.Violatef("add transition from nonexistent state %q", state)
	}
	if !p.states[target] {
		fsmerrors.Violatef("add transition to nonexistent state %q", target)
	}
	if !p.stackSymbols[top] {
		fsmerrors.Violatef("add transition on nonexistent stack symbol %q", top)
	}
	if inputSym != Epsilon && !p.inputSymbols[inputSym] {
		fsmerrors.Violatef("add transition on nonexistent input symbol %q", inputSym)
	}
	if push != Epsilon {
		for _, r := range push {
			if !p.stackSymbols[string(r)] {
				fsmerrors.Violatef("add transition pushing nonexistent stack symbol %q", string(r))
			}
		}
	}

	key := []string{state, inputSym, top}
	existing, _ := p.transitions.Get(key)
	existing = append(existing, move{Target: target, Push: push})
	p.transitions.Set(key, existing)
}

// States returns every declared state.
func (p PDA) States() fsmutil.StringSet {
	return fsmutil.StringSetOf(keysOf(p.states))
}

// FinalStates returns F.
func (p PDA) FinalStates() fsmutil.StringSet {
	return fsmutil.StringSetOf(keysOf(p.finalStates))
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func splitSymbols(w string) []string {
	var out []string
	for _, r := range w {
		out = append(out, string(r))
	}
	return out
}
