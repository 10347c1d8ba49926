package pda

import (
	"strconv"
	"strings"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
)

// DefaultConfigurationLimit bounds how many distinct configurations a single
// Run may explore before giving up with a search-limit error, guarding
// against the ε-loop nontermination risk spec.md §9 calls out (the Python
// original this package is grounded on has no such guard at all).
const DefaultConfigurationLimit = 100_000

// configuration is (state, input-index, stack), per spec.md §4.7.
type configuration struct {
	state string
	pos   int
	stack []string
}

func (c configuration) signature() string {
	var sb strings.Builder
	sb.WriteString(c.state)
	sb.WriteByte('\x1f')
	sb.WriteString(strconv.Itoa(c.pos))
	sb.WriteByte('\x1f')
	sb.WriteString(strings.Join(c.stack, ","))
	return sb.String()
}

func (c configuration) top() string {
	if len(c.stack) == 0 {
		return Epsilon
	}
	return c.stack[len(c.stack)-1]
}

// AcceptsByFinalState reports whether w is accepted by consuming all of w and
// reaching any state in F, exploring at most limit distinct configurations.
// limit <= 0 uses DefaultConfigurationLimit.
func (p PDA) AcceptsByFinalState(w string, limit int) (bool, error) {
	symbols := splitSymbols(w)
	return p.run(symbols, limit, func(c configuration) bool {
		return c.pos == len(symbols) && p.finalStates[c.state]
	})
}

// AcceptsByEmptyStack reports whether w is accepted by consuming all of w and
// emptying the stack, exploring at most limit distinct configurations.
// limit <= 0 uses DefaultConfigurationLimit.
func (p PDA) AcceptsByEmptyStack(w string, limit int) (bool, error) {
	symbols := splitSymbols(w)
	return p.run(symbols, limit, func(c configuration) bool {
		return c.pos == len(symbols) && len(c.stack) == 0
	})
}

// run is the nondeterministic configuration-DFS shared by both acceptance
// variants: at each configuration, check the termination predicate, then try
// every applicable move (consuming move first, then spontaneous ε-move),
// copying the stack and recursing. Already-seen configurations are
// memoized as dead ends, which both prevents infinite ε-loops and avoids
// repeating work; explored is additionally bounded by limit as a backstop
// for pathologically large but non-repeating search spaces.
func (p PDA) run(symbols []string, limit int, accept func(configuration) bool) (bool, error) {
	if limit <= 0 {
		limit = DefaultConfigurationLimit
	}

	visited := map[string]bool{}
	explored := 0

	var dfs func(c configuration) (bool, error)
	dfs = func(c configuration) (bool, error) {
		if accept(c) {
			return true, nil
		}

		sig := c.signature()
		if visited[sig] {
			return false, nil
		}
		visited[sig] = true

		explored++
		if explored > limit {
			return false, fsmerrors.NewSearchLimitError("PDA search exceeded configuration limit")
		}

		top := c.top()

		type candidate struct {
			inputSym string
			consumes bool
		}
		var candidates []candidate
		if c.pos < len(symbols) {
			candidates = append(candidates, candidate{inputSym: symbols[c.pos], consumes: true})
		}
		candidates = append(candidates, candidate{inputSym: Epsilon, consumes: false})

		for _, cand := range candidates {
			moves, ok := p.transitions.Get([]string{c.state, cand.inputSym, top})
			if !ok {
				continue
			}
			for _, m := range moves {
				next := configuration{
					state: m.Target,
					pos:   c.pos,
					stack: popAndPush(c.stack, m.Push),
				}
				if cand.consumes {
					next.pos++
				}

				ok, err := dfs(next)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
		}

		return false, nil
	}

	start := configuration{state: p.Start, pos: 0, stack: []string{p.StartStackSymbol}}
	return dfs(start)
}

// popAndPush returns a fresh copy of stack with its top popped and, unless
// push is Epsilon, push's characters appended left to right so the last
// character ends up on top.
func popAndPush(stack []string, push string) []string {
	next := make([]string, 0, len(stack)+len(push))
	next = append(next, stack...)
	if len(next) > 0 {
		next = next[:len(next)-1]
	}
	if push != Epsilon {
		for _, r := range push {
			next = append(next, string(r))
		}
	}
	return next
}
