package regexc

import (
	"github.com/dekarrin/carpfsm/internal/automaton"
	"github.com/dekarrin/carpfsm/internal/fsmerrors"
)

// getSingleAcceptState returns the one accepting state every fragment built
// by this file is guaranteed to have. Panics if that invariant was somehow
// broken, which would mean a bug in one of the constructors below rather
// than a malformed pattern.
func getSingleAcceptState(nfa automaton.NFA[string]) string {
	accepting := nfa.AcceptingStates()
	if accepting.Len() != 1 {
		fsmerrors.Violatef("regex fragment has %d accepting states, want exactly 1", accepting.Len())
	}
	return accepting.Elements()[0]
}

// createSingleSymbolFA builds the two-state fragment for a bare literal
// operand: a single edge labelled symbol from the fragment's start to its
// one accepting state.
func createSingleSymbolFA(symbol string) automaton.NFA[string] {
	var nfa automaton.NFA[string]
	nfa.AddState("A", false)
	nfa.AddState("B", true)
	nfa.Start = "A"
	nfa.AddTransition("A", symbol, "B")
	return nfa
}

// createClassFA builds the fragment for a character class: one edge per
// distinct member, all from the same start to the same accepting state.
func createClassFA(members []string) automaton.NFA[string] {
	var nfa automaton.NFA[string]
	nfa.AddState("A", false)
	nfa.AddState("B", true)
	nfa.Start = "A"

	seen := map[string]bool{}
	for _, m := range members {
		if seen[m] {
			continue
		}
		seen[m] = true
		nfa.AddTransition("A", m, "B")
	}
	return nfa
}

// createJuxtapositionFA implements concatenation st: glue left's accepting
// state to right's start with an ε-edge, and left's old accept is no longer
// final.
func createJuxtapositionFA(left, right automaton.NFA[string]) automaton.NFA[string] {
	leftAccept := getSingleAcceptState(left)

	return left.Join(
		right,
		[][3]string{{leftAccept, automaton.Epsilon, right.Start}},
		nil,
		nil,
		[]string{"1:" + leftAccept},
	)
}

// createAlternationFA implements alternation s|t: a fresh start/accept pair,
// ε-linked to and from both operands' old start/accept states.
func createAlternationFA(left, right automaton.NFA[string]) automaton.NFA[string] {
	leftAccept := getSingleAcceptState(left)
	rightAccept := getSingleAcceptState(right)

	var nfa automaton.NFA[string]
	nfa.AddState("A", false)
	nfa.AddState("B", true)
	nfa.Start = "A"
	nfaAccept := "B"

	nfa = nfa.Join(
		left,
		[][3]string{{nfa.Start, automaton.Epsilon, left.Start}},
		[][3]string{{leftAccept, automaton.Epsilon, nfaAccept}},
		nil,
		[]string{"2:" + leftAccept},
	)

	nfaAccept = getSingleAcceptState(nfa)
	nfa = nfa.Join(
		right,
		[][3]string{{nfa.Start, automaton.Epsilon, right.Start}},
		[][3]string{{rightAccept, automaton.Epsilon, nfaAccept}},
		nil,
		[]string{"2:" + rightAccept},
	)

	return nfa
}

// createKleeneStarFA implements s*: a fresh start/accept pair, an ε by-pass
// directly from the new start to the new accept (zero repetitions), and the
// inner fragment ε-wired in with a back-edge from its accept to its own
// start so it can repeat.
func createKleeneStarFA(expr automaton.NFA[string]) automaton.NFA[string] {
	exprAccept := getSingleAcceptState(expr)

	looped := expr.Copy()
	looped.AddTransition(exprAccept, automaton.Epsilon, looped.Start)

	var nfa automaton.NFA[string]
	nfa.AddState("A", false)
	nfa.AddState("B", true)
	nfa.Start = "A"
	nfaAccept := "B"
	nfa.AddTransition(nfa.Start, automaton.Epsilon, nfaAccept)

	nfa = nfa.Join(
		looped,
		[][3]string{{nfa.Start, automaton.Epsilon, looped.Start}},
		[][3]string{{exprAccept, automaton.Epsilon, nfaAccept}},
		nil,
		[]string{"2:" + exprAccept},
	)

	return nfa
}

// createPositiveClosureFA implements s+: identical to createKleeneStarFA but
// without the zero-repetition by-pass, so at least one pass through expr is
// required.
func createPositiveClosureFA(expr automaton.NFA[string]) automaton.NFA[string] {
	exprAccept := getSingleAcceptState(expr)

	looped := expr.Copy()
	looped.AddTransition(exprAccept, automaton.Epsilon, looped.Start)

	var nfa automaton.NFA[string]
	nfa.AddState("A", false)
	nfa.AddState("B", true)
	nfa.Start = "A"
	nfaAccept := "B"

	nfa = nfa.Join(
		looped,
		[][3]string{{nfa.Start, automaton.Epsilon, looped.Start}},
		[][3]string{{exprAccept, automaton.Epsilon, nfaAccept}},
		nil,
		[]string{"2:" + exprAccept},
	)

	return nfa
}

// buildFromPostfix evaluates a postfix token stream into a single NFA
// fragment via Thompson construction. kindInSet tokens are buffered rather
// than pushed as fragments; kindClassEnd drains that buffer into one class
// fragment.
func buildFromPostfix(postfix []token) (automaton.NFA[string], error) {
	var stack []automaton.NFA[string]
	var classBuf []string

	pop2 := func() (automaton.NFA[string], automaton.NFA[string], bool) {
		if len(stack) < 2 {
			return automaton.NFA[string]{}, automaton.NFA[string]{}, false
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		return left, right, true
	}
	pop1 := func() (automaton.NFA[string], bool) {
		if len(stack) < 1 {
			return automaton.NFA[string]{}, false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, true
	}

	for _, t := range postfix {
		switch t.kind {
		case kindOperand:
			stack = append(stack, createSingleSymbolFA(t.val))
		case kindInSet:
			classBuf = append(classBuf, t.val)
		case kindClassEnd:
			if len(classBuf) == 0 {
				return automaton.NFA[string]{}, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "character class terminator with no members")
			}
			stack = append(stack, createClassFA(classBuf))
			classBuf = nil
		case kindConcat:
			left, right, ok := pop2()
			if !ok {
				return automaton.NFA[string]{}, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "concatenation missing an operand")
			}
			stack = append(stack, createJuxtapositionFA(left, right))
		case kindAlt:
			left, right, ok := pop2()
			if !ok {
				return automaton.NFA[string]{}, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "alternation missing an operand")
			}
			stack = append(stack, createAlternationFA(left, right))
		case kindStar:
			expr, ok := pop1()
			if !ok {
				return automaton.NFA[string]{}, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "'*' missing an operand")
			}
			stack = append(stack, createKleeneStarFA(expr))
		case kindPlus:
			expr, ok := pop1()
			if !ok {
				return automaton.NFA[string]{}, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "'+' missing an operand")
			}
			stack = append(stack, createPositiveClosureFA(expr))
		default:
			return automaton.NFA[string]{}, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "unexpected token while building NFA")
		}
	}

	if len(stack) != 1 {
		return automaton.NFA[string]{}, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "pattern did not reduce to a single expression")
	}

	result := stack[0]
	result.NumberStates()
	return result, nil
}
