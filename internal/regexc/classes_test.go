package regexc

import (
	"testing"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/stretchr/testify/assert"
)

func Test_expandRanges_expandsInclusiveRange(t *testing.T) {
	assert := assert.New(t)

	// setup
	inner := []token{
		{kind: kindOperand, val: "a"},
		{kind: kindOperand, val: "-"},
		{kind: kindOperand, val: "d"},
	}

	// execute
	members, err := expandRanges(inner)

	// assert
	assert.NoError(err)
	assert.Equal([]string{"a", "b", "c", "d"}, members)
}

func Test_expandRanges_passesThroughLiteralsAndMixesWithRanges(t *testing.T) {
	assert := assert.New(t)

	// setup
	inner := []token{
		{kind: kindOperand, val: "_"},
		{kind: kindOperand, val: "0"},
		{kind: kindOperand, val: "-"},
		{kind: kindOperand, val: "2"},
	}

	// execute
	members, err := expandRanges(inner)

	// assert
	assert.NoError(err)
	assert.Equal([]string{"_", "0", "1", "2"}, members)
}

func Test_expandRanges_backwardsRange_isError(t *testing.T) {
	assert := assert.New(t)

	// setup
	inner := []token{
		{kind: kindOperand, val: "z"},
		{kind: kindOperand, val: "-"},
		{kind: kindOperand, val: "a"},
	}

	// execute
	_, err := expandRanges(inner)

	// assert
	assert.Error(err)
	var ce *fsmerrors.ConstructionError
	assert.ErrorAs(err, &ce)
	assert.Equal(fsmerrors.EmptyRange, ce.Kind)
}

func Test_expandClasses_tagsMembersAndAppendsClassEnd(t *testing.T) {
	assert := assert.New(t)

	// setup
	toks, err := tokenize("[a-c]")
	assert.NoError(err)

	// execute
	out, err := expandClasses(toks)

	// assert
	assert.NoError(err)
	assert.Equal([]token{
		{kind: kindLBracket},
		{kind: kindInSet, val: "a"},
		{kind: kindInSet, val: "b"},
		{kind: kindInSet, val: "c"},
		{kind: kindRBracket},
		{kind: kindClassEnd},
	}, out)
}

func Test_expandClasses_emptyClass_isError(t *testing.T) {
	assert := assert.New(t)

	// setup: this is exactly what tokenize produces for "[]", since a ']'
	// immediately after '[' is consumed as the closing bracket with no
	// members in between
	toks := []token{{kind: kindLBracket}, {kind: kindRBracket}}

	// execute
	_, err := expandClasses(toks)

	// assert
	assert.Error(err)
	var ce *fsmerrors.ConstructionError
	assert.ErrorAs(err, &ce)
	assert.Equal(fsmerrors.UnbalancedClass, ce.Kind)
}

func Test_expandClasses_leavesNonClassTokensAlone(t *testing.T) {
	assert := assert.New(t)

	// setup
	toks, err := tokenize("a|b")
	assert.NoError(err)

	// execute
	out, err := expandClasses(toks)

	// assert
	assert.NoError(err)
	assert.Equal(toks, out)
}
