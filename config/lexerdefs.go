// Package config loads lexer token-kind definitions from TOML files, the
// same file-based configuration idiom the teacher's internal/tqw package
// uses for its own TOML-based (TQW) world data format.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/carpfsm/internal/lex"
)

// TokenDef is one `[[token]]` table of a lexer definitions file.
type TokenDef struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`

	// Effect names a built-in side effect to run after a match of this kind,
	// in "name" or "name:arg" form. Empty means no side effect (the token is
	// emitted as-is). See resolveEffect for the supported names.
	Effect string `toml:"effect"`
}

// LexerDefs is the parsed contents of a lexer definitions file: an ordered
// list of token kinds, in the declaration order that also breaks
// longest-match ties during scanning.
type LexerDefs struct {
	Token []TokenDef `toml:"token"`
}

// LoadLexerDefs reads and parses the TOML lexer definitions file at path.
func LoadLexerDefs(path string) (LexerDefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LexerDefs{}, fmt.Errorf("read lexer defs: %w", err)
	}

	var defs LexerDefs
	if err := toml.Unmarshal(data, &defs); err != nil {
		return LexerDefs{}, fmt.Errorf("parse lexer defs: %w", err)
	}
	return defs, nil
}

// Compile turns the parsed definitions into lex.Definitions ready to hand to
// lex.New, resolving each entry's named Effect to an actual lex.Effect.
func (d LexerDefs) Compile() ([]lex.Definition, error) {
	out := make([]lex.Definition, 0, len(d.Token))
	for _, t := range d.Token {
		eff, err := resolveEffect(t.Effect)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", t.Name, err)
		}
		out = append(out, lex.Definition{Kind: t.Name, Pattern: t.Pattern, Effect: eff})
	}
	return out, nil
}

// resolveEffect maps a definitions-file effect name to a lex.Effect. Config
// files cannot express arbitrary Go closures, so only a small fixed
// vocabulary is supported, covering the two side effects spec.md §4.8 names
// by example (a line counter and a comment consumer) plus plain
// suppression for kinds like whitespace that produce no token at all.
func resolveEffect(spec string) (lex.Effect, error) {
	if spec == "" {
		return nil, nil
	}

	name, arg, _ := strings.Cut(spec, ":")
	switch name {
	case "suppress":
		return func(ctx *lex.EffectContext) {
			ctx.Suppress()
		}, nil
	case "newline":
		return func(ctx *lex.EffectContext) {
			ctx.IncrementLine()
			ctx.Suppress()
		}, nil
	case "block_comment":
		if arg == "" {
			return nil, fmt.Errorf("block_comment effect requires a sentinel, e.g. %q", "block_comment:*/")
		}
		return func(ctx *lex.EffectContext) {
			ctx.AdvanceUntil(arg)
			ctx.Suppress()
		}, nil
	default:
		return nil, fmt.Errorf("unknown effect %q", name)
	}
}
