package grammar

import (
	"fmt"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
	"github.com/dekarrin/carpfsm/internal/tuplemap"
)

// LL1Table is the predictive-parse table M, keyed by (variable, terminal-or-$)
// and valued by the single production to apply at that cell.
type LL1Table struct {
	cells *tuplemap.Map[cellEntry]
}

// cellEntry records which production was placed into a cell alongside which
// head it belongs to, so conflicts can be reported without a second lookup.
type cellEntry struct {
	head string
	prod Production
}

// NewLL1Table creates an empty LL(1) table.
func NewLL1Table() LL1Table {
	return LL1Table{cells: tuplemap.New[cellEntry](2)}
}

// Get returns the production assigned to cell (A, a), if any.
func (t LL1Table) Get(A, a string) (Production, bool) {
	e, ok := t.cells.Get([]string{A, a})
	if !ok {
		return nil, false
	}
	return e.prod, true
}

func (t LL1Table) set(A, a string, p Production) {
	t.cells.Set([]string{A, a}, cellEntry{head: A, prod: p})
}

// BuildLL1Table constructs the LL(1) parse table for g following spec.md
// §4.6: for each production A -> α, every terminal in FIRST(α) gets a cell
// M[A,a] = A->α; if ε ∈ FIRST(α), every symbol (terminal or $) in FOLLOW(A)
// gets the same assignment. A second assignment to an already-occupied cell
// is an LL(1) conflict and aborts construction with a diagnostic naming
// both colliding productions.
func BuildLL1Table(g Grammar) (LL1Table, error) {
	table := NewLL1Table()
	first := g.FIRSTSets()
	follow := g.FOLLOWSets()

	assign := func(A, a string, p Production) error {
		if existing, ok := table.Get(A, a); ok {
			if existing.Equal(p) {
				return nil
			}
			msg := fmt.Sprintf(
				"cell (%s, %s) has two productions: %s",
				A, a,
				fsmutil.MakeTextList([]string{
					fmt.Sprintf("%s -> %s", A, existing.String()),
					fmt.Sprintf("%s -> %s", A, p.String()),
				}),
			)
			return fsmerrors.NewConstructionError(fsmerrors.LL1Conflict, msg, A, a)
		}
		table.set(A, a, p)
		return nil
	}

	for _, head := range g.order {
		for _, prod := range g.rules[head].Productions {
			var firstAlpha fsmutil.StringSet
			if prod.IsEpsilon() {
				firstAlpha = fsmutil.StringSetOf([]string{Epsilon})
			} else {
				firstAlpha = FIRSTOfString(prod, first)
			}

			for _, a := range firstAlpha.Elements() {
				if a == Epsilon {
					continue
				}
				if err := assign(head, a, prod); err != nil {
					return LL1Table{}, err
				}
			}

			if firstAlpha.Has(Epsilon) {
				for _, b := range follow[head].Elements() {
					if err := assign(head, b, prod); err != nil {
						return LL1Table{}, err
					}
				}
			}
		}
	}

	return table, nil
}

// IsLL1 reports whether g's LL(1) table can be built without conflict.
func (g Grammar) IsLL1() bool {
	_, err := BuildLL1Table(g)
	return err == nil
}
