package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// ParseTree is a node in the concrete syntax tree built by a predictive
// parse. Terminal nodes carry the literal symbol they matched in Lexeme;
// this package is lexer-agnostic, so Lexeme is always just the terminal
// symbol string itself rather than a full lexer token.
type ParseTree struct {
	Terminal bool
	Value    string
	Lexeme   string
	Children []*ParseTree
}

// Copy returns a deep copy of pt.
func (pt ParseTree) Copy() ParseTree {
	cp := ParseTree{Terminal: pt.Terminal, Value: pt.Value, Lexeme: pt.Lexeme}
	if len(pt.Children) > 0 {
		cp.Children = make([]*ParseTree, len(pt.Children))
		for i, c := range pt.Children {
			if c != nil {
				child := c.Copy()
				cp.Children[i] = &child
			}
		}
	}
	return cp
}

// Equal reports whether pt and other have identical structure.
func (pt ParseTree) Equal(other ParseTree) bool {
	if pt.Terminal != other.Terminal || pt.Value != other.Value {
		return false
	}
	if len(pt.Children) != len(other.Children) {
		return false
	}
	for i := range pt.Children {
		if (pt.Children[i] == nil) != (other.Children[i] == nil) {
			return false
		}
		if pt.Children[i] != nil && !pt.Children[i].Equal(*other.Children[i]) {
			return false
		}
	}
	return true
}

func (pt ParseTree) String() string {
	return pt.indented(0)
}

func (pt ParseTree) indented(depth int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	if pt.Terminal {
		sb.WriteString(fmt.Sprintf("(TERM %q)", pt.Lexeme))
	} else {
		sb.WriteString(fmt.Sprintf("(%s)", pt.Value))
	}
	for _, c := range pt.Children {
		sb.WriteRune('\n')
		sb.WriteString(c.indented(depth + 1))
	}
	return sb.String()
}

// TraceStep records one step of a predictive parse: the portion of the
// input matched so far, the parser's symbol stack bottom-to-top, the
// unconsumed remainder of input (including the trailing $), and a
// human-readable description of the action taken.
type TraceStep struct {
	MatchedPrefix []string
	Stack         []string
	Remaining     []string
	Action        string
}

// Parse runs the stack-driven predictive parser described in spec.md §4.6
// over input using g's productions and the given LL(1) table, returning the
// built parse tree and a step-by-step trace suitable for verbose display.
// input must not itself contain the end-of-input marker; it is appended
// automatically.
func Parse(g Grammar, table LL1Table, input []string) (ParseTree, []TraceStep, error) {
	symStack := fsmutil.Stack[string]{Of: []string{EndOfInput, g.Start}}

	tokens := append(append([]string{}, input...), EndOfInput)
	pos := 0

	root := &ParseTree{Value: g.Start}
	nodeStack := fsmutil.Stack[*ParseTree]{Of: []*ParseTree{root}}

	var trace []TraceStep
	record := func(action string) {
		trace = append(trace, TraceStep{
			MatchedPrefix: append([]string(nil), tokens[:pos]...),
			Stack:         append([]string(nil), symStack.Of...),
			Remaining:     append([]string(nil), tokens[pos:]...),
			Action:        action,
		})
	}

	for {
		X := symStack.Peek()
		a := tokens[pos]

		if X == EndOfInput && a == EndOfInput {
			record("accept")
			return *root, trace, nil
		}

		if g.IsTerminal(X) || X == EndOfInput {
			if X != a {
				record(fmt.Sprintf("error: expected %q, found %q", X, a))
				return *root, trace, fsmerrors.NewConstructionError(
					fsmerrors.MalformedSymbol,
					fmt.Sprintf("expected %q but found %q", X, a),
					X, a,
				)
			}
			node := nodeStack.Peek()
			node.Terminal = true
			node.Lexeme = a

			symStack.Pop()
			nodeStack.Pop()
			pos++
			record(fmt.Sprintf("match '%s'", X))
			continue
		}

		// X is a variable.
		prod, ok := table.Get(X, a)
		if !ok {
			record(fmt.Sprintf("error: no production for (%s, %s)", X, a))
			return *root, trace, fsmerrors.NewConstructionError(
				fsmerrors.NoSuchState,
				fmt.Sprintf("no entry in the LL(1) table for (%s, %s)", X, a),
				X, a,
			)
		}

		symStack.Pop()
		node := nodeStack.Pop()

		var children []*ParseTree
		if !prod.IsEpsilon() {
			for _, sym := range prod {
				child := &ParseTree{Value: sym}
				children = append(children, child)
			}
			for i := len(children) - 1; i >= 0; i-- {
				symStack.Push(prod[i])
				nodeStack.Push(children[i])
			}
		} else {
			eps := &ParseTree{Value: Epsilon, Terminal: true, Lexeme: Epsilon}
			children = append(children, eps)
		}
		node.Children = children

		if rule, ok := g.Rule(X); ok {
			for i, p := range rule.Productions {
				if p.Equal(prod) && rule.Actions[i] != nil {
					rule.Actions[i](children)
					break
				}
			}
		}

		record(fmt.Sprintf("output %s -> %s", X, prod.String()))
	}
}
