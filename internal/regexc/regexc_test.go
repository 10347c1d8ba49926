package regexc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Compile_emptyPatternMatchesOnlyEpsilon(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile("")

	// assert
	assert.NoError(err)
	assert.True(nfa.Run(""))
	assert.False(nfa.Run("a"))
}

func Test_Compile_bareLiteral(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile("a")

	// assert
	assert.NoError(err)
	assert.True(nfa.Run("a"))
	assert.False(nfa.Run(""))
	assert.False(nfa.Run("b"))
	assert.False(nfa.Run("aa"))
}

func Test_Compile_concatenation(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile("abc")

	// assert
	assert.NoError(err)
	assert.True(nfa.Run("abc"))
	assert.False(nfa.Run("ab"))
	assert.False(nfa.Run("abcd"))
}

func Test_Compile_alternation(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile("a|b")

	// assert
	assert.NoError(err)
	assert.True(nfa.Run("a"))
	assert.True(nfa.Run("b"))
	assert.False(nfa.Run("c"))
	assert.False(nfa.Run("ab"))
}

func Test_Compile_kleeneStar(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile("a*")

	// assert
	assert.NoError(err)
	assert.True(nfa.Run(""))
	assert.True(nfa.Run("a"))
	assert.True(nfa.Run("aaaa"))
	assert.False(nfa.Run("b"))
	assert.False(nfa.Run("aab"))
}

func Test_Compile_positiveClosure(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile("a+")

	// assert
	assert.NoError(err)
	assert.False(nfa.Run(""))
	assert.True(nfa.Run("a"))
	assert.True(nfa.Run("aaaa"))
	assert.False(nfa.Run("b"))
}

func Test_Compile_characterClassWithRange(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile("[a-c]+")

	// assert
	assert.NoError(err)
	assert.True(nfa.Run("a"))
	assert.True(nfa.Run("abc"))
	assert.True(nfa.Run("cba"))
	assert.False(nfa.Run(""))
	assert.False(nfa.Run("d"))
	assert.False(nfa.Run("abd"))
}

func Test_Compile_escapedMetacharacterIsLiteral(t *testing.T) {
	assert := assert.New(t)

	// execute
	nfa, err := Compile(`a\*b`)

	// assert
	assert.NoError(err)
	assert.True(nfa.Run("a*b"))
	assert.False(nfa.Run("aaab"))
}

func Test_Compile_malformedPattern_propagatesConstructionError(t *testing.T) {
	assert := assert.New(t)

	// execute
	_, err := Compile("(a|b")

	// assert
	assert.Error(err)
}

// Test_Compile_altStarAbb covers spec scenario 2: the regex (a|b)*abb
// matches any string over {a,b} ending in "abb".
func Test_Compile_altStarAbb(t *testing.T) {
	assert := assert.New(t)

	// setup
	nfa, err := Compile("(a|b)*abb")
	assert.NoError(err)

	// execute + assert: accepts
	for _, w := range []string{"abb", "aabb", "babb", "abbabb", "aaabb"} {
		assert.Truef(nfa.Run(w), "expected %q to be accepted", w)
	}

	// execute + assert: rejects
	for _, w := range []string{"", "a", "b", "ab", "ba", "abba"} {
		assert.Falsef(nfa.Run(w), "expected %q to be rejected", w)
	}
}

// Test_CompileDFA_altStarAbb_viaSubsetConstruction re-checks scenario 2
// after determinising through CompileDFA, so the NFA and DFA paths agree.
func Test_CompileDFA_altStarAbb_viaSubsetConstruction(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa, err := CompileDFA("(a|b)*abb")
	assert.NoError(err)

	// execute + assert
	for _, w := range []string{"abb", "aabb", "babb", "abbabb"} {
		assert.Truef(dfa.Run(w), "expected %q to be accepted", w)
	}
	for _, w := range []string{"", "a", "b", "ab", "abba"} {
		assert.Falsef(dfa.Run(w), "expected %q to be rejected", w)
	}
}

// Test_CompileDFA_oneStarZeroZeroOrOneStar_minimizesToTwoStates covers
// spec scenario 3: 1*0(0|1)* over {0,1}, whose minimal DFA has exactly two
// states (one tracking "no 0 seen yet", one tracking "a 0 has been seen").
func Test_CompileDFA_oneStarZeroZeroOrOneStar_minimizesToTwoStates(t *testing.T) {
	assert := assert.New(t)

	// setup
	dfa, err := CompileDFA("1*0(0|1)*")
	assert.NoError(err)
	min := dfa.Minimize(false)

	// execute
	states := min.States()

	// assert
	assert.Equal(2, states.Len())
	for _, w := range []string{"0", "10", "110", "0010", "111000111"} {
		assert.Truef(min.Run(w), "expected %q to be accepted", w)
	}
	for _, w := range []string{"", "1", "11", "111"} {
		assert.Falsef(min.Run(w), "expected %q to be rejected", w)
	}
}
