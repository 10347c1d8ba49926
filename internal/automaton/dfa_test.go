package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildAcceptsZeroOneZero builds the DFA from the "accepts 010" scenario:
// Q={q0,q1,q2,q3}, Σ={0,1}, δ={q0-0→q1, q1-1→q2, q2-0→q3}, F={q3}.
func buildAcceptsZeroOneZero() DFA[any] {
	dfa := DFA[any]{}
	dfa.AddState("q0", false)
	dfa.AddState("q1", false)
	dfa.AddState("q2", false)
	dfa.AddState("q3", true)
	dfa.Start = "q0"

	dfa.AddTransition("q0", "0", "q1")
	dfa.AddTransition("q1", "1", "q2")
	dfa.AddTransition("q2", "0", "q3")

	return dfa
}

func Test_DFA_Run_acceptsZeroOneZero(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty string", "", false},
		{"single 0", "0", false},
		{"01", "01", false},
		{"010", "010", true},
		{"0100", "0100", false},
		{"undefined transition", "000", false},
		{"out of alphabet", "012", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			// setup
			dfa := buildAcceptsZeroOneZero()

			// execute
			got := dfa.Run(tc.input)

			// assert
			assert.Equal(tc.want, got)
		})
	}
}

func Test_DFA_RunVerbose_tracesEachStep(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := buildAcceptsZeroOneZero()

	// execute
	accepted, trace := dfa.RunVerbose("010")

	// assert
	assert.True(accepted)
	assert.Equal([]TraceStep{
		{Pre: "q0", Input: "0", Next: "q1"},
		{Pre: "q1", Input: "1", Next: "q2"},
		{Pre: "q2", Input: "0", Next: "q3"},
	}, trace)
}

func Test_DFA_Validate_detectsUnreachableAndDanglingStates(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := DFA[any]{}
	dfa.AddState("q0", false)
	dfa.AddState("unreachable", false)
	dfa.Start = "q0"

	// execute
	err := dfa.Validate()

	// assert
	assert.Error(err)
	assert.Contains(err.Error(), "unreachable")
}

func Test_DFA_Copy_isIndependent(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := buildAcceptsZeroOneZero()

	// execute
	cp := dfa.Copy()
	cp.AddTransition("q3", "1", "q0")

	// assert
	assert.Empty(dfa.Next("q3", "1"))
	assert.Equal("q0", cp.Next("q3", "1"))
}

func Test_DFA_NumberStates_startBecomesQ0(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := DFA[any]{}
	dfa.AddState("alpha", false)
	dfa.AddState("beta", true)
	dfa.Start = "alpha"
	dfa.AddTransition("alpha", "x", "beta")

	// execute
	dfa.NumberStates()

	// assert
	assert.Equal("q0", dfa.Start)
	assert.True(dfa.States().Has("q0"))
	assert.True(dfa.States().Has("q1"))
	assert.True(dfa.Run("x"))
}
