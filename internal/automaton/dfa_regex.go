package automaton

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// ToRegex converts the DFA into an equivalent regular expression via state
// elimination. The returned syntax uses '+' for alternation, '*' for Kleene
// star, bare juxtaposition for concatenation and a literal "ε" for the empty
// string; this differs from the regex surface syntax of internal/regexc,
// where '+' is positive closure and '|' is alternation. Parentheses are added
// around any multi-character operand before it is composed with another.
func ToRegex[E any](a DFA[E]) string {
	names := fsmutil.OrderedKeys(a.states)
	n := len(names)
	idx := make(map[string]int, n)
	for i, nm := range names {
		idx[nm] = i
	}

	R := make([][]string, n)
	for i := range R {
		R[i] = make([]string, n)
	}

	for i, ni := range names {
		for j, nj := range names {
			if i == j {
				selfLetters := []string{}
				for sym, to := range a.states[ni].transitions {
					if to == ni {
						selfLetters = append(selfLetters, sym)
					}
				}
				sort.Strings(selfLetters)
				expr := "ε"
				for _, c := range selfLetters {
					expr += "+" + c
				}
				R[i][j] = expr
				continue
			}

			letters := []string{}
			for sym, to := range a.states[ni].transitions {
				if to == nj {
					letters = append(letters, sym)
				}
			}
			sort.Strings(letters)
			R[i][j] = strings.Join(letters, "+")
		}
	}

	for k := 0; k < n; k++ {
		next := make([][]string, n)
		for i := range next {
			next[i] = make([]string, n)
			copy(next[i], R[i])
		}

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				rik, rkk, rkj := R[i][k], R[k][k], R[k][j]
				if rik == "" || rkk == "" || rkj == "" {
					continue
				}
				through := parenIfNeeded(rik) + parenIfNeeded(rkk) + "*" + parenIfNeeded(rkj)
				if next[i][j] == "" {
					next[i][j] = through
				} else {
					next[i][j] = next[i][j] + "+" + through
				}
			}
		}
		R = next
	}

	finals := []int{}
	for i, nm := range names {
		if a.states[nm].accepting {
			finals = append(finals, i)
		}
	}

	startIdx, ok := idx[a.Start]
	if !ok {
		return ""
	}

	parts := []string{}
	for _, f := range finals {
		if R[startIdx][f] != "" {
			parts = append(parts, R[startIdx][f])
		}
	}
	return strings.Join(parts, "+")
}

// parenIfNeeded wraps s in parentheses unless it is a single atom (one rune,
// e.g. a bare letter or the lone "ε"); utf8.RuneCountInString is used rather
// than len so that "ε" itself is never mistaken for a compound expression.
func parenIfNeeded(s string) string {
	if utf8.RuneCountInString(s) > 1 {
		return "(" + s + ")"
	}
	return s
}
