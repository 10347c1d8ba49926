package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// buildContainsOne accepts any string over {0,1} containing at least one 1.
func buildContainsOne() DFA[any] {
	dfa := DFA[any]{}
	dfa.AddState("no1", false)
	dfa.AddState("seen1", true)
	dfa.Start = "no1"
	dfa.AddTransition("no1", "0", "no1")
	dfa.AddTransition("no1", "1", "seen1")
	dfa.AddTransition("seen1", "0", "seen1")
	dfa.AddTransition("seen1", "1", "seen1")
	return dfa
}

// buildEndsInZero accepts any nonempty string over {0,1} whose last symbol is 0.
func buildEndsInZero() DFA[any] {
	dfa := DFA[any]{}
	dfa.AddState("start", false)
	dfa.AddState("last0", true)
	dfa.AddState("last1", false)
	dfa.Start = "start"
	dfa.AddTransition("start", "0", "last0")
	dfa.AddTransition("start", "1", "last1")
	dfa.AddTransition("last0", "0", "last0")
	dfa.AddTransition("last0", "1", "last1")
	dfa.AddTransition("last1", "0", "last0")
	dfa.AddTransition("last1", "1", "last1")
	return dfa
}

func allStringsUpTo(n int) []string {
	var out []string
	cur := []string{""}
	for i := 0; i <= n; i++ {
		out = append(out, cur...)
		var next []string
		for _, s := range cur {
			next = append(next, s+"0", s+"1")
		}
		cur = next
	}
	return out
}

func Test_DFA_Union_matchesSetUnion(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := buildContainsOne()
	b := buildEndsInZero()

	// execute
	u := Union(a, b)

	// assert
	for _, w := range allStringsUpTo(5) {
		want := a.Run(w) || b.Run(w)
		assert.Equal(want, u.Run(w), "union mismatch on %q", w)
	}
}

func Test_DFA_Intersect_matchesSetIntersection(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := buildContainsOne()
	b := buildEndsInZero()

	// execute
	i := Intersect(a, b)

	// assert
	for _, w := range allStringsUpTo(5) {
		want := a.Run(w) && b.Run(w)
		assert.Equal(want, i.Run(w), "intersection mismatch on %q", w)
	}
}

func Test_DFA_Difference_matchesSetDifference(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := buildContainsOne()
	b := buildEndsInZero()

	// execute
	d := Difference(a, b)

	// assert
	for _, w := range allStringsUpTo(5) {
		want := a.Run(w) && !b.Run(w)
		assert.Equal(want, d.Run(w), "difference mismatch on %q", w)
	}
}

func Test_DFA_Complement_matchesSetComplement(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := buildContainsOne()
	alphabet := fsmutil.StringSetOf([]string{"0", "1"})

	// execute
	c := Complement(a, alphabet)

	// assert
	for _, w := range allStringsUpTo(5) {
		assert.Equal(!a.Run(w), c.Run(w), "complement mismatch on %q", w)
	}
}

func Test_DFA_Complement_isIdempotentUnderDoubleComplement(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := buildContainsOne()
	alphabet := fsmutil.StringSetOf([]string{"0", "1"})

	// execute
	cc := Complement(Complement(a, alphabet), alphabet)

	// assert
	for _, w := range allStringsUpTo(5) {
		assert.Equal(a.Run(w), cc.Run(w), "double complement mismatch on %q", w)
	}
}

func Test_Equivalent_detectsSameAndDifferentLanguages(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := buildContainsOne()
	aAgain := buildContainsOne()
	b := buildEndsInZero()

	// execute / assert
	assert.True(Equivalent(a, aAgain))
	assert.False(Equivalent(a, b))
}

func Test_IsEmpty_detectsUnreachableAcceptingState(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa := DFA[any]{}
	dfa.AddState("start", false)
	dfa.AddState("deadAccept", true)
	dfa.Start = "start"
	dfa.AddTransition("start", "0", "start")

	// execute / assert
	assert.True(IsEmpty(dfa))

	// setup: now make the accepting state reachable
	dfa.AddTransition("start", "1", "deadAccept")
	assert.False(IsEmpty(dfa))
}
