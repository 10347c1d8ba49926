package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildAltStarAbbNFA hand-builds a small NFA for (a|b)*abb: a/b self-loops
// on the start state, followed by a literal "abb" tail.
func buildAltStarAbbNFA() NFA[any] {
	nfa := NFA[any]{}
	nfa.AddState("s0", false)
	nfa.AddState("s4", false)
	nfa.AddState("s5", false)
	nfa.AddState("s6", false)
	nfa.AddState("s1", true)
	nfa.Start = "s0"

	// s0 loops directly on a or b back to s0 (the (a|b)* part)
	nfa.AddTransition("s0", "a", "s0")
	nfa.AddTransition("s0", "b", "s0")

	// tail: s0 -ε-> s4 -a-> s5 -b-> s6 -b-> s1 (accept)
	nfa.AddTransition("s0", Epsilon, "s4")
	nfa.AddTransition("s4", "a", "s5")
	nfa.AddTransition("s5", "b", "s6")
	nfa.AddTransition("s6", "b", "s1")

	return nfa
}

func Test_NFA_Run_matchesAltStarAbbScenario(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{"abb", "abb", true},
		{"aabb", "aabb", true},
		{"babb", "babb", true},
		{"abbabb", "abbabb", true},
		{"a", "a", false},
		{"b", "b", false},
		{"ab", "ab", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			// setup
			nfa := buildAltStarAbbNFA()

			// execute
			got := nfa.Run(tc.input)

			// assert
			assert.Equal(tc.want, got)
		})
	}
}

func Test_NFA_ToDFA_agreesWithNFAOnRun(t *testing.T) {
	assert := assert.New(t)

	// setup
	nfa := buildAltStarAbbNFA()
	dfa := nfa.ToDFA()

	inputs := []string{"", "a", "b", "ab", "abb", "aabb", "babb", "abbabb", "abba", "bbb"}

	for _, w := range inputs {
		// execute / assert
		assert.Equal(nfa.Run(w), dfa.Run(w), "NFA/DFA mismatch on %q", w)
	}
}

func Test_NFA_EpsilonClosure_includesSelfAndEpsilonReachable(t *testing.T) {
	assert := assert.New(t)

	// setup
	nfa := NFA[any]{}
	nfa.AddState("a", false)
	nfa.AddState("b", false)
	nfa.AddState("c", true)
	nfa.Start = "a"
	nfa.AddTransition("a", Epsilon, "b")
	nfa.AddTransition("b", Epsilon, "c")

	// execute
	closure := nfa.EpsilonClosure("a")

	// assert
	assert.True(closure.Has("a"))
	assert.True(closure.Has("b"))
	assert.True(closure.Has("c"))
	assert.Equal(3, closure.Len())
}

func Test_NFA_Join_namespacesStatesAndLinksFragments(t *testing.T) {
	assert := assert.New(t)

	// setup: two tiny NFAs each matching a single literal, joined in sequence
	first := NFA[any]{}
	first.AddState("start", false)
	first.AddState("end", true)
	first.Start = "start"
	first.AddTransition("start", "a", "end")

	second := NFA[any]{}
	second.AddState("start", false)
	second.AddState("end", true)
	second.Start = "start"
	second.AddTransition("start", "b", "end")

	// execute: concatenate first then second, linking first's end to
	// second's start by epsilon, and first's end is no longer accepting
	joined := first.Join(second, [][3]string{{"end", Epsilon, "start"}}, nil, nil, []string{"1:end"})

	// assert
	assert.True(joined.States().Has("1:start"))
	assert.True(joined.States().Has("2:end"))
	assert.Equal("1:start", joined.Start)
	assert.True(joined.Run("ab"))
	assert.False(joined.Run("a"))
	assert.False(joined.Run("b"))
}

func Test_NFA_Copy_isIndependent(t *testing.T) {
	assert := assert.New(t)

	// setup
	nfa := NFA[any]{}
	nfa.AddState("s0", false)
	nfa.AddState("s1", true)
	nfa.Start = "s0"
	nfa.AddTransition("s0", "a", "s1")

	// execute
	cp := nfa.Copy()
	cp.AddTransition("s1", "b", "s0")

	// assert
	assert.Empty(nfa.states["s1"].transitions["b"])
	assert.NotEmpty(cp.states["s1"].transitions["b"])
}
