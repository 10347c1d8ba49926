// Package regexc compiles the regex dialect described in spec.md §4.5
// (literals, `|`, `*`, `+`, concatenation by juxtaposition, grouping with
// `(`/`)`, and character classes with `[a-z]`-style ranges, plus `\`-escapes)
// into an automaton.NFA via Thompson construction. The pipeline is
// tokenize -> expandClasses -> insertConcatenation -> toPostfix ->
// buildFromPostfix.
package regexc

import (
	"github.com/dekarrin/carpfsm/internal/automaton"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// Compile builds an NFA that accepts exactly the language denoted by
// pattern. The empty pattern is a special case: per spec.md §4.5 it matches
// exactly ε, which buildFromPostfix cannot express directly since its
// operand fragments always consume a symbol.
func Compile(pattern string) (automaton.NFA[string], error) {
	if pattern == "" {
		return epsilonNFA(), nil
	}

	toks, err := tokenize(pattern)
	if err != nil {
		return automaton.NFA[string]{}, err
	}

	toks, err = expandClasses(toks)
	if err != nil {
		return automaton.NFA[string]{}, err
	}

	toks = insertConcatenation(toks)
	toks = stripBracketMarkers(toks)

	postfix, err := toPostfix(toks)
	if err != nil {
		return automaton.NFA[string]{}, err
	}

	return buildFromPostfix(postfix)
}

// epsilonNFA builds the two-state fragment that accepts only the empty
// string, linked by a single ε-edge.
func epsilonNFA() automaton.NFA[string] {
	var nfa automaton.NFA[string]
	nfa.AddState("A", false)
	nfa.AddState("B", true)
	nfa.Start = "A"
	nfa.AddTransition("A", automaton.Epsilon, "B")
	nfa.NumberStates()
	return nfa
}

// CompileDFA compiles pattern and immediately determinises it via subset
// construction, for callers (e.g. the lexer harness) that want a DFA per
// token kind rather than an NFA.
func CompileDFA(pattern string) (automaton.DFA[fsmutil.SVSet[string]], error) {
	nfa, err := Compile(pattern)
	if err != nil {
		return automaton.DFA[fsmutil.SVSet[string]]{}, err
	}
	dfa := nfa.ToDFA()
	dfa.NumberStates()
	return dfa, nil
}
