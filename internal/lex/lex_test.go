package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Scan_longestMatchBeatsFirstDeclared(t *testing.T) {
	assert := assert.New(t)

	// setup: IDENT would match "if" too, but KEYWORD_IF and IDENT tie in
	// length on "if" specifically — declaration order must pick KEYWORD_IF.
	// To actually exercise longest-match (not just tie-break), ID matches
	// "iffy" fully while KEYWORD_IF only matches its "if" prefix.
	s, err := New([]Definition{
		{Kind: "KEYWORD_IF", Pattern: "if"},
		{Kind: "IDENT", Pattern: "[a-z]+"},
	})
	assert.NoError(err)

	// execute
	toks, err := s.Scan("iffy")

	// assert: one IDENT token spanning the whole word, not KEYWORD_IF + IDENT
	assert.NoError(err)
	assert.Len(toks, 1)
	assert.Equal("IDENT", toks[0].Kind)
	assert.Equal("iffy", toks[0].Lexeme)
}

func Test_Scan_tiesBreakByDeclarationOrder(t *testing.T) {
	assert := assert.New(t)

	// setup: both kinds match "if" exactly (same length) — first declared
	// wins
	s, err := New([]Definition{
		{Kind: "KEYWORD_IF", Pattern: "if"},
		{Kind: "IDENT", Pattern: "[a-z]+"},
	})
	assert.NoError(err)

	// execute
	toks, err := s.Scan("if")

	// assert
	assert.NoError(err)
	assert.Len(toks, 1)
	assert.Equal("KEYWORD_IF", toks[0].Kind)
}

func Test_Scan_multipleTokensAndLineTracking(t *testing.T) {
	assert := assert.New(t)

	// setup: a newline kind bumps the line counter via IncrementLine and is
	// itself suppressed from the token stream
	s, err := New([]Definition{
		{Kind: "NEWLINE", Pattern: "\n", Effect: func(ctx *EffectContext) {
			ctx.IncrementLine()
			ctx.Suppress()
		}},
		{Kind: "WS", Pattern: " +", Effect: func(ctx *EffectContext) {
			ctx.Suppress()
		}},
		{Kind: "IDENT", Pattern: "[a-z]+"},
	})
	assert.NoError(err)

	// execute
	toks, err := s.Scan("ab cd\nef")

	// assert
	assert.NoError(err)
	assert.Len(toks, 3)
	assert.Equal(Token{Kind: "IDENT", Lexeme: "ab", Line: 1}, toks[0])
	assert.Equal(Token{Kind: "IDENT", Lexeme: "cd", Line: 1}, toks[1])
	assert.Equal(Token{Kind: "IDENT", Lexeme: "ef", Line: 2}, toks[2])
}

func Test_Scan_effectAdvanceUntilConsumesCommentBody(t *testing.T) {
	assert := assert.New(t)

	// setup: a block comment kind whose pattern matches only the opening
	// "/*" delimiter, with the body and closing "*/" consumed by the effect
	s, err := New([]Definition{
		{Kind: "COMMENT", Pattern: "/\\*", Effect: func(ctx *EffectContext) {
			ctx.AdvanceUntil("*/")
			ctx.Suppress()
		}},
		{Kind: "IDENT", Pattern: "[a-z]+"},
	})
	assert.NoError(err)

	// execute
	toks, err := s.Scan("a/* skip this entirely */b")

	// assert
	assert.NoError(err)
	assert.Len(toks, 2)
	assert.Equal("a", toks[0].Lexeme)
	assert.Equal("b", toks[1].Lexeme)
}

func Test_Scan_noMatchingKind_isSyntaxError(t *testing.T) {
	assert := assert.New(t)

	// setup
	s, err := New([]Definition{
		{Kind: "IDENT", Pattern: "[a-z]+"},
	})
	assert.NoError(err)

	// execute
	toks, err := s.Scan("ab9")

	// assert: "ab" is matched as IDENT, then "9" matches nothing
	assert.Error(err)
	var se *SyntaxError
	assert.ErrorAs(err, &se)
	assert.Equal(2, se.Pos)
	assert.Len(toks, 1)
}

func Test_New_propagatesMalformedPatternError(t *testing.T) {
	assert := assert.New(t)

	// execute
	_, err := New([]Definition{
		{Kind: "BAD", Pattern: "("},
	})

	// assert
	assert.Error(err)
}
