package grammar

import "github.com/dekarrin/carpfsm/internal/fsmutil"

// FIRSTSets computes FIRST(X) for every terminal and variable in g in one
// fixed-point pass, per spec.md §4.6: a terminal's FIRST is itself; a
// variable's FIRST accumulates, left to right over each of its productions,
// FIRST(Yi)∖{ε} until some Yi does not admit ε, adding ε itself only if
// every Yi in the production admits it (or the production is ε outright).
func (g Grammar) FIRSTSets() map[string]fsmutil.StringSet {
	sets := map[string]fsmutil.StringSet{}
	for _, t := range g.Terminals() {
		sets[t] = fsmutil.StringSetOf([]string{t})
	}
	for _, v := range g.order {
		sets[v] = fsmutil.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, head := range g.order {
			for _, prod := range g.rules[head].Productions {
				before := sets[head].Len()

				if prod.IsEpsilon() {
					sets[head].Add(Epsilon)
				} else {
					allNullable := true
					for _, Y := range prod {
						firstY := sets[Y]
						for _, sym := range firstY.Elements() {
							if sym != Epsilon {
								sets[head].Add(sym)
							}
						}
						if !firstY.Has(Epsilon) {
							allNullable = false
							break
						}
					}
					if allNullable {
						sets[head].Add(Epsilon)
					}
				}

				if sets[head].Len() != before {
					changed = true
				}
			}
		}
	}
	return sets
}

// FIRST returns FIRST(X) computed to a fixed point over the whole grammar.
// Prefer FIRSTSets when computing FIRST for more than one symbol, since this
// recomputes every symbol's set from scratch on each call.
func (g Grammar) FIRST(X string) fsmutil.StringSet {
	return g.FIRSTSets()[X]
}

// FIRSTOfString computes FIRST(β) for β = Y1...Yn given the FIRST sets of
// its individual symbols: the union of FIRST(Yi)∖{ε} over the longest
// ε-admitting prefix, including ε itself iff every Yi admits it. An empty β
// (the ε production's meaning, not its literal encoding) trivially admits
// only ε.
func FIRSTOfString(beta []string, firstSets map[string]fsmutil.StringSet) fsmutil.StringSet {
	result := fsmutil.NewStringSet()
	if len(beta) == 0 {
		result.Add(Epsilon)
		return result
	}

	allNullable := true
	for _, Y := range beta {
		firstY := firstSets[Y]
		for _, sym := range firstY.Elements() {
			if sym != Epsilon {
				result.Add(sym)
			}
		}
		if !firstY.Has(Epsilon) {
			allNullable = false
			break
		}
	}
	if allNullable {
		result.Add(Epsilon)
	}
	return result
}

// FOLLOWSets computes FOLLOW(A) for every variable A in g, per spec.md
// §4.6: FOLLOW(S) starts containing $; for every production A -> αBβ,
// FIRST(β)∖{ε} is added to FOLLOW(B), and FOLLOW(A) is added to FOLLOW(B) as
// well whenever β admits ε (including when β is empty, i.e. B is the last
// symbol of the production).
func (g Grammar) FOLLOWSets() map[string]fsmutil.StringSet {
	first := g.FIRSTSets()

	follow := map[string]fsmutil.StringSet{}
	for _, v := range g.order {
		follow[v] = fsmutil.NewStringSet()
	}
	if _, ok := follow[g.Start]; ok {
		follow[g.Start].Add(EndOfInput)
	}

	changed := true
	for changed {
		changed = false
		for _, head := range g.order {
			for _, prod := range g.rules[head].Productions {
				if prod.IsEpsilon() {
					continue
				}
				for i, B := range prod {
					if !g.IsVariable(B) {
						continue
					}
					beta := prod[i+1:]
					firstBeta := FIRSTOfString(beta, first)

					before := follow[B].Len()
					for _, sym := range firstBeta.Elements() {
						if sym != Epsilon {
							follow[B].Add(sym)
						}
					}
					if firstBeta.Has(Epsilon) {
						follow[B].AddAll(follow[head])
					}
					if follow[B].Len() != before {
						changed = true
					}
				}
			}
		}
	}
	return follow
}

// FOLLOW returns FOLLOW(X) computed to a fixed point over the whole
// grammar. Prefer FOLLOWSets when computing FOLLOW for more than one
// variable.
func (g Grammar) FOLLOW(X string) fsmutil.StringSet {
	return g.FOLLOWSets()[X]
}
