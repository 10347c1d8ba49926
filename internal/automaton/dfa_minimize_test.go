package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildEightStateFixture is a hand-built minimisation fixture: B/C and D/E
// share an identical transition row with their twin, and the accepting F/H
// agree on 1 (to G) and on 0 go to H, so they are indistinguishable too;
// table-filling must collapse each pair into one class while A and G stay
// singletons, taking 8 states down to 5.
func buildEightStateFixture() DFA[any] {
	dfa := DFA[any]{}
	for _, name := range []string{"A", "B", "C", "D", "E", "G"} {
		dfa.AddState(name, false)
	}
	dfa.AddState("F", true)
	dfa.AddState("H", true)
	dfa.Start = "A"

	dfa.AddTransition("A", "0", "B")
	dfa.AddTransition("A", "1", "C")
	dfa.AddTransition("B", "0", "D")
	dfa.AddTransition("B", "1", "E")
	dfa.AddTransition("C", "0", "D")
	dfa.AddTransition("C", "1", "E")
	dfa.AddTransition("D", "0", "F")
	dfa.AddTransition("D", "1", "G")
	dfa.AddTransition("E", "0", "F")
	dfa.AddTransition("E", "1", "G")
	dfa.AddTransition("F", "0", "H")
	dfa.AddTransition("F", "1", "G")
	dfa.AddTransition("G", "0", "G")
	dfa.AddTransition("G", "1", "G")
	dfa.AddTransition("H", "0", "H")
	dfa.AddTransition("H", "1", "G")

	return dfa
}

func Test_DFA_Minimize_collapsesEightStatesToFive(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := buildEightStateFixture()

	// execute
	min := dfa.Minimize(false)

	// assert
	assert.Equal(8, dfa.States().Len(), "original fixture should be untouched")
	assert.Equal(5, min.States().Len())

	inputs := []string{"", "0", "1", "00", "000", "0000", "0001", "010", "101", "00001"}
	for _, w := range inputs {
		assert.Equal(dfa.Run(w), min.Run(w), "language must be preserved for input %q", w)
	}
}

func Test_DFA_Minimize_isIdempotent(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := buildEightStateFixture()

	// execute
	once := dfa.Minimize(false)
	twice := once.Minimize(false)

	// assert
	assert.Equal(once.States().Len(), twice.States().Len())
}

func Test_DFA_RemoveUnreachable_prunesDanglingStates(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := DFA[any]{}
	dfa.AddState("start", false)
	dfa.AddState("reachable", true)
	dfa.AddState("island", false)
	dfa.Start = "start"
	dfa.AddTransition("start", "a", "reachable")

	// execute
	pruned := dfa.RemoveUnreachable(false)

	// assert
	assert.False(pruned.States().Has("island"))
	assert.True(pruned.States().Has("reachable"))
	assert.Equal(3, dfa.States().Len(), "original must be untouched when inPlace is false")
}
