package config

import (
	"testing"

	"github.com/dekarrin/carpfsm/internal/lex"
	"github.com/stretchr/testify/assert"
)

func Test_LoadLexerDefs_parsesCmmSample(t *testing.T) {
	assert := assert.New(t)

	// execute
	defs, err := LoadLexerDefs("cmm_tokens.toml")

	// assert
	assert.NoError(err)
	assert.NotEmpty(defs.Token)

	var names []string
	for _, tok := range defs.Token {
		names = append(names, tok.Name)
	}
	assert.Contains(names, "ID")
	assert.Contains(names, "IF")
	assert.Contains(names, "ENDLINE")
}

func Test_LexerDefs_Compile_scansSampleSource(t *testing.T) {
	assert := assert.New(t)

	// setup
	defs, err := LoadLexerDefs("cmm_tokens.toml")
	assert.NoError(err)
	kinds, err := defs.Compile()
	assert.NoError(err)

	s, err := lex.New(kinds)
	assert.NoError(err)

	// execute
	toks, err := s.Scan("int x = 1;\nif (x == 1) { return x; }\n")

	// assert
	assert.NoError(err)
	var kindsSeen []string
	for _, tok := range toks {
		kindsSeen = append(kindsSeen, tok.Kind)
	}
	assert.Contains(kindsSeen, "TYPE")
	assert.Contains(kindsSeen, "ID")
	assert.Contains(kindsSeen, "ASSIGNOP")
	assert.Contains(kindsSeen, "INT")
	assert.Contains(kindsSeen, "SEMI")
	assert.Contains(kindsSeen, "IF")
	assert.Contains(kindsSeen, "RELOP")
	assert.Contains(kindsSeen, "RETURN")
	assert.NotContains(kindsSeen, "BLANK")
}

func Test_LexerDefs_Compile_rejectsUnknownEffect(t *testing.T) {
	assert := assert.New(t)

	// setup
	defs := LexerDefs{Token: []TokenDef{{Name: "X", Pattern: "x", Effect: "bogus"}}}

	// execute
	_, err := defs.Compile()

	// assert
	assert.Error(err)
}
