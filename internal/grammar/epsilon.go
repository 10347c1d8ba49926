package grammar

// RemoveEpsilons returns a grammar that derives the same strings as g (with
// the possible exception of the empty string itself) but with every
// ε-production eliminated, by propagating each nullable variable's epsilon
// out to every rule that references it. It is an optional pre-pass a caller
// may run before BuildLL1Table; it is never invoked implicitly.
//
// g must already satisfy Validate.
func (g Grammar) RemoveEpsilons() Grammar {
	g = g.Copy()

	propagated := map[string]bool{}

	for {
		toPropagate := ""
		for _, head := range g.order {
			if hasEpsilonProduction(g.rules[head].Productions) {
				toPropagate = head
				break
			}
		}
		if toPropagate == "" {
			break
		}
		A := toPropagate
		ruleA := g.rules[A]

		producesA := map[string]bool{}
		for _, head := range g.order {
			if canProduceSymbol(g.rules[head], A) {
				producesA[head] = true
			}
		}

		for B := range producesA {
			ruleB := g.rules[B]

			if len(ruleA.Productions) == 1 {
				// A is only ever an epsilon producer; every B production that
				// mentions it can simply drop it.
				newProds := make([]Production, len(ruleB.Productions))
				for i, bProd := range ruleB.Productions {
					if len(bProd) == 1 && bProd[0] == A {
						newProds[i] = Production{Epsilon}
						continue
					}
					var newProd Production
					for _, sym := range bProd {
						if sym != A {
							newProd = append(newProd, sym)
						}
					}
					newProds[i] = newProd
				}
				ruleB.Productions = newProds
			} else {
				var newProds []Production
				var newActions []Action
				for i, bProd := range ruleB.Productions {
					if containsSymbol(bProd, A) {
						for _, rewrite := range epsilonRewrites(A, bProd) {
							newProds = append(newProds, rewrite)
							newActions = append(newActions, ruleB.Actions[i])
						}
					} else {
						newProds = append(newProds, bProd)
						newActions = append(newActions, ruleB.Actions[i])
					}
				}
				if propagated[B] {
					newProds, newActions = stripEpsilonProductions(newProds, newActions)
				}
				ruleB.Productions = newProds
				ruleB.Actions = newActions
			}

			if A == B {
				ruleA = ruleB
			}
			g.rules[B] = ruleB
		}

		propagated[A] = true
		ruleA.Productions, ruleA.Actions = stripEpsilonProductions(ruleA.Productions, ruleA.Actions)
		g.rules[A] = ruleA
	}

	return g
}

func hasEpsilonProduction(prods []Production) bool {
	for _, p := range prods {
		if p.IsEpsilon() {
			return true
		}
	}
	return false
}

func canProduceSymbol(r *Rule, sym string) bool {
	for _, prod := range r.Productions {
		if containsSymbol(prod, sym) {
			return true
		}
	}
	return false
}

func containsSymbol(prod Production, sym string) bool {
	for _, s := range prod {
		if s == sym {
			return true
		}
	}
	return false
}

// stripEpsilonProductions removes every epsilon-only production (and its
// parallel action) from prods/actions.
func stripEpsilonProductions(prods []Production, actions []Action) ([]Production, []Action) {
	var newProds []Production
	var newActions []Action
	for i, p := range prods {
		if p.IsEpsilon() {
			continue
		}
		newProds = append(newProds, p)
		newActions = append(newActions, actions[i])
	}
	return newProds, newActions
}

// epsilonRewrites enumerates every way of dropping zero or more occurrences
// of epsilonable from prod, deduplicated; if every occurrence is dropped and
// nothing remains, the result is the epsilon production.
func epsilonRewrites(epsilonable string, prod Production) []Production {
	var positions []int
	for i, sym := range prod {
		if sym == epsilonable {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return []Production{prod}
	}

	drop := make([]bool, len(positions))
	seen := map[string]bool{}
	var out []Production

	// iterate every subset of positions to drop, largest (drop-everything)
	// first so ties favor the minimal production
	perms := 1 << len(positions)
	for mask := perms - 1; mask >= 0; mask-- {
		for j := range positions {
			drop[j] = (mask>>j)&1 == 1
		}

		var newProd Production
		dropIdx := 0
		for i, sym := range prod {
			if dropIdx < len(positions) && positions[dropIdx] == i {
				if !drop[dropIdx] {
					newProd = append(newProd, sym)
				}
				dropIdx++
				continue
			}
			newProd = append(newProd, sym)
		}
		if len(newProd) == 0 {
			newProd = Production{Epsilon}
		}

		key := newProd.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, newProd)
	}

	return out
}
