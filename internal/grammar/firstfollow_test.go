package grammar

import (
	"testing"

	"github.com/dekarrin/carpfsm/internal/fsmutil"
	"github.com/stretchr/testify/assert"
)

func Test_FIRST_andFOLLOW_matchAnBnGrammar(t *testing.T) {
	assert := assert.New(t)

	// setup
	g := buildAnBn()

	// execute
	first := g.FIRST("S")
	follow := g.FOLLOW("S")

	// assert: FIRST(S) = {a, ε}
	assert.True(first.Has("a"))
	assert.True(first.Has(Epsilon))
	assert.Equal(2, first.Len())

	// assert: FOLLOW(S) = {$, b}
	assert.True(follow.Has(EndOfInput))
	assert.True(follow.Has("b"))
	assert.Equal(2, follow.Len())
}

func Test_FIRSTOfString_stopsAtFirstNonNullableSymbol(t *testing.T) {
	assert := assert.New(t)

	// setup
	g := buildAnBn()
	sets := g.FIRSTSets()

	// execute: FIRST("S b") should be {a, b} since S is nullable but the
	// alternative via ε continues to "b"
	result := FIRSTOfString([]string{"S", "b"}, sets)

	// assert
	assert.True(result.Has("a"))
	assert.True(result.Has("b"))
	assert.False(result.Has(Epsilon))
}

func Test_FIRSTOfString_emptyStringAdmitsOnlyEpsilon(t *testing.T) {
	assert := assert.New(t)

	// execute
	result := FIRSTOfString(nil, map[string]fsmutil.StringSet{})

	// assert: the empty string's FIRST is exactly {ε}, regardless of the
	// (unused, since beta is empty) firstSets map
	assert.True(result.Has(Epsilon))
	assert.Equal(1, result.Len())
}

func Test_FIRST_terminalIsItself(t *testing.T) {
	assert := assert.New(t)

	// setup
	g := buildAnBn()

	// execute
	first := g.FIRST("a")

	// assert
	assert.True(first.Has("a"))
	assert.Equal(1, first.Len())
}
