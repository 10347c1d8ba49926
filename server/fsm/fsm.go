// Package fsm has services for building and running automata, regexes,
// grammars, and pushdown automata, decoupled from the API that exposes them.
// It performs the actions requested directly against the internal automata
// packages; there is no persistence layer, since every object described
// here exists only for the lifetime of a single request.
package fsm

import (
	"fmt"
	"sort"

	"github.com/dekarrin/carpfsm/internal/automaton"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
	"github.com/dekarrin/carpfsm/internal/grammar"
	"github.com/dekarrin/carpfsm/internal/pda"
	"github.com/dekarrin/carpfsm/internal/regexc"
)

// Service is a service for building and running automata submitted by
// callers. The zero value is ready to use; it holds no state of its own.
type Service struct{}

// DFADescription is the wire representation of a DFA[struct{}]: a plain
// transition table with no per-state payload, suitable for marshaling to
// and from JSON.
type DFADescription struct {
	States      []string          `json:"states"`
	Start       string            `json:"start"`
	Accepting   []string          `json:"accepting"`
	Transitions []TransitionEntry `json:"transitions"`
}

// TransitionEntry is one entry of δ in a DFADescription or NFADescription.
type TransitionEntry struct {
	From  string `json:"from"`
	Input string `json:"input"`
	To    string `json:"to"`
}

// NFADescription is the wire representation of an NFA[struct{}]. Input may
// be automaton.Epsilon to describe an ε-transition.
type NFADescription struct {
	States      []string          `json:"states"`
	Start       string            `json:"start"`
	Accepting   []string          `json:"accepting"`
	Transitions []TransitionEntry `json:"transitions"`
}

// Build converts d into a DFA[struct{}], adding every named state before any
// transition is added so that declaration order in the JSON doesn't matter.
func (d DFADescription) Build() automaton.DFA[struct{}] {
	var dfa automaton.DFA[struct{}]
	accepting := fsmutil.StringSetOf(d.Accepting)
	for _, s := range d.States {
		dfa.AddState(s, accepting.Has(s))
	}
	dfa.Start = d.Start
	for _, t := range d.Transitions {
		dfa.AddTransition(t.From, t.Input, t.To)
	}
	return dfa
}

// Build converts d into an NFA[struct{}].
func (d NFADescription) Build() automaton.NFA[struct{}] {
	var nfa automaton.NFA[struct{}]
	accepting := fsmutil.StringSetOf(d.Accepting)
	for _, s := range d.States {
		nfa.AddState(s, accepting.Has(s))
	}
	nfa.Start = d.Start
	for _, t := range d.Transitions {
		nfa.AddTransition(t.From, t.Input, t.To)
	}
	return nfa
}

// DescribeDFA converts any DFA into its wire representation, discarding
// whatever per-state payload E carries.
func DescribeDFA[E any](dfa automaton.DFA[E]) DFADescription {
	desc := DFADescription{Start: dfa.Start}
	for _, s := range sortedElements(dfa.States()) {
		desc.States = append(desc.States, s)
		if dfa.IsAccepting(s) {
			desc.Accepting = append(desc.Accepting, s)
		}
	}
	for _, from := range sortedElements(dfa.States()) {
		for _, sym := range sortedElements(dfa.Alphabet()) {
			if to := dfa.Next(from, sym); to != "" {
				desc.Transitions = append(desc.Transitions, TransitionEntry{From: from, Input: sym, To: to})
			}
		}
	}
	return desc
}

func sortedElements(s fsmutil.StringSet) []string {
	els := s.Elements()
	sort.Strings(els)
	return els
}

// RunDFAResult is the outcome of a DFA run, including the step-by-step
// trace so callers can show their work.
type RunDFAResult struct {
	Accepted bool                  `json:"accepted"`
	Trace    []automaton.TraceStep `json:"trace"`
}

// RunDFA builds desc and runs it against input, returning a full trace.
func (Service) RunDFA(desc DFADescription, input string) RunDFAResult {
	dfa := desc.Build()
	accepted, trace := dfa.RunVerbose(input)
	return RunDFAResult{Accepted: accepted, Trace: trace}
}

// MinimizeDFA builds desc, removes unreachable states, and applies
// Hopcroft-style table-filling minimization.
func (Service) MinimizeDFA(desc DFADescription) DFADescription {
	dfa := desc.Build()
	min := dfa.Minimize(false)
	return DescribeDFA(min)
}

// BooleanOp is one of the supported two-DFA boolean operations.
type BooleanOp string

const (
	OpUnion        BooleanOp = "union"
	OpIntersection BooleanOp = "intersection"
	OpDifference   BooleanOp = "difference"
	OpComplement   BooleanOp = "complement"
)

// Boolean builds a (and b, for every op but complement) and combines them
// via op, returning the resulting DFA. Complement ignores b and uses a's
// own alphabet as the universe to complement against.
func (Service) Boolean(op BooleanOp, a, b DFADescription) (DFADescription, error) {
	dfaA := a.Build()

	switch op {
	case OpComplement:
		return DescribeDFA(automaton.Complement(dfaA, dfaA.Alphabet())), nil
	case OpUnion:
		return DescribeDFA(automaton.Union(dfaA, b.Build())), nil
	case OpIntersection:
		return DescribeDFA(automaton.Intersect(dfaA, b.Build())), nil
	case OpDifference:
		return DescribeDFA(automaton.Difference(dfaA, b.Build())), nil
	default:
		return DFADescription{}, fmt.Errorf("unknown boolean operation %q", op)
	}
}

// CompileRegex compiles pattern via Thompson construction followed by
// subset construction, returning the resulting DFA.
func (Service) CompileRegex(pattern string) (DFADescription, error) {
	dfa, err := regexc.CompileDFA(pattern)
	if err != nil {
		return DFADescription{}, err
	}
	return DescribeDFA(dfa), nil
}

// ToRegex runs state-elimination over desc to recover an equivalent regex.
func (Service) ToRegex(desc DFADescription) string {
	dfa := desc.Build()
	return automaton.ToRegex(dfa)
}

// ProductionDescription is the wire representation of one grammar
// production, naming its head explicitly so a flat list can rebuild a
// Grammar regardless of declaration order.
type ProductionDescription struct {
	Head string   `json:"head"`
	Body []string `json:"body"`
}

// GrammarDescription is the wire representation of a context-free grammar.
type GrammarDescription struct {
	Start       string                   `json:"start"`
	Productions []ProductionDescription `json:"productions"`
}

// Build converts d into a Grammar with no semantic actions attached; the API
// layer only needs table construction, never tree-building callbacks.
func (d GrammarDescription) Build() grammar.Grammar {
	g := grammar.New(d.Start)
	for _, p := range d.Productions {
		g.AddRule(p.Head, p.Body, nil)
	}
	return g
}

// LL1TableEntry is one occupied cell of an LL1TableDescription.
type LL1TableEntry struct {
	Variable string   `json:"variable"`
	Lookahead string  `json:"lookahead"`
	Body     []string `json:"body"`
}

// LL1TableDescription is the wire representation of an LL1Table: every
// occupied cell, flattened to a list.
type LL1TableDescription struct {
	Cells []LL1TableEntry `json:"cells"`
}

// LL1Table builds desc and constructs its LL(1) parse table. The error
// returned is a *fsmerrors.ConstructionError of kind LL1Conflict when the
// grammar is not LL(1); callers should map that to HTTP-409.
func (Service) LL1Table(desc GrammarDescription) (LL1TableDescription, error) {
	g := desc.Build()
	table, err := grammar.BuildLL1Table(g)
	if err != nil {
		return LL1TableDescription{}, err
	}

	var out LL1TableDescription
	for _, A := range g.Variables() {
		for _, a := range append(g.Terminals(), grammar.EndOfInput) {
			if p, ok := table.Get(A, a); ok {
				out.Cells = append(out.Cells, LL1TableEntry{Variable: A, Lookahead: a, Body: p})
			}
		}
	}
	return out, nil
}

// PDATransitionEntry is one entry of a PDA's δ.
type PDATransitionEntry struct {
	State  string `json:"state"`
	Input  string `json:"input"`
	Top    string `json:"top"`
	Target string `json:"target"`
	Push   string `json:"push"`
}

// PDADescription is the wire representation of a pushdown automaton.
type PDADescription struct {
	Start            string               `json:"start"`
	StartStackSymbol string               `json:"start_stack_symbol"`
	FinalStates      []string             `json:"final_states"`
	Transitions      []PDATransitionEntry `json:"transitions"`
}

// Build converts d into a *pda.PDA, declaring every referenced state and
// symbol before adding any transition.
func (d PDADescription) Build() *pda.PDA {
	p := pda.New(d.Start, d.StartStackSymbol)

	seenState := map[string]bool{d.Start: true}
	seenStack := map[string]bool{d.StartStackSymbol: true}
	seenInput := map[string]bool{}

	declareState := func(s string) {
		if !seenState[s] {
			seenState[s] = true
			p.AddState(s)
		}
	}
	declareStack := func(s string) {
		for _, r := range s {
			sym := string(r)
			if !seenStack[sym] {
				seenStack[sym] = true
				p.AddStackSymbol(sym)
			}
		}
	}
	declareInput := func(s string) {
		if s != pda.Epsilon && !seenInput[s] {
			seenInput[s] = true
			p.AddInputSymbol(s)
		}
	}

	for _, t := range d.Transitions {
		declareState(t.State)
		declareState(t.Target)
		declareStack(t.Top)
		declareStack(t.Push)
		declareInput(t.Input)
	}
	for _, t := range d.Transitions {
		p.AddTransition(t.State, t.Input, t.Top, t.Target, t.Push)
	}
	if len(d.FinalStates) > 0 {
		for _, f := range d.FinalStates {
			declareState(f)
		}
		p.SetFinalStates(d.FinalStates...)
	}
	return p
}

// PDAMode selects which of the two standard acceptance conditions RunPDA
// checks.
type PDAMode string

const (
	PDAModeFinalState PDAMode = "final_state"
	PDAModeEmptyStack PDAMode = "empty_stack"
)

// RunPDA builds desc and simulates it against input under mode, bounded by
// limit (DefaultConfigurationLimit is used when limit <= 0). The error
// returned wraps fsmerrors.ErrSearchLimitExceeded when the configuration
// search exhausts its budget before reaching a verdict; callers should map
// that to HTTP-422, since the answer is genuinely unknown rather than "no".
func (Service) RunPDA(desc PDADescription, input string, mode PDAMode, limit int) (bool, error) {
	p := desc.Build()
	switch mode {
	case PDAModeEmptyStack:
		return p.AcceptsByEmptyStack(input, limit)
	default:
		return p.AcceptsByFinalState(input, limit)
	}
}
