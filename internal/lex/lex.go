// Package lex implements the DFA-driven lexer harness of spec.md §4.8: each
// token kind is a (name, regex, optional side effect) triple compiled to a
// DFA at construction time, and scanning proceeds left to right by
// longest-match-then-declaration-order.
package lex

import (
	"fmt"
	"strings"

	"github.com/dekarrin/carpfsm/internal/automaton"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
	"github.com/dekarrin/carpfsm/internal/regexc"
)

// Definition is one token kind: a name, the regex its lexemes must match,
// and an optional Effect run after a token of this kind is matched.
type Definition struct {
	Kind    string
	Pattern string
	Effect  Effect
}

// Token is a lexeme matched against a Definition's pattern, tagged with the
// kind that matched it and the line it started on. It is deliberately a
// plain data record: spec.md treats the token data type as a thin external
// collaborator, not part of this package's contract.
type Token struct {
	Kind   string
	Lexeme string
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q (line %d)", t.Kind, t.Lexeme, t.Line)
}

// SyntaxError is returned by Scan when no declared kind matches at the
// current read pointer.
type SyntaxError struct {
	Line int
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type compiledDef struct {
	Kind   string
	dfa    automaton.DFA[fsmutil.SVSet[string]]
	Effect Effect
}

// Scanner holds the compiled DFAs for a fixed set of Definitions and can
// scan any number of source strings against them.
type Scanner struct {
	defs  []compiledDef
	input []rune
	pos   int
	line  int
}

// New compiles every Definition's pattern to a DFA via regexc, in the given
// declaration order (which also breaks longest-match ties during Scan).
func New(defs []Definition) (*Scanner, error) {
	compiled := make([]compiledDef, 0, len(defs))
	for _, d := range defs {
		dfa, err := regexc.CompileDFA(d.Pattern)
		if err != nil {
			return nil, fmt.Errorf("token kind %q: %w", d.Kind, err)
		}
		compiled = append(compiled, compiledDef{Kind: d.Kind, dfa: dfa, Effect: d.Effect})
	}
	return &Scanner{defs: compiled}, nil
}

// Scan tokenizes src in full, running each kind's DFA greedily at the
// current read pointer and keeping the farthest-reaching match; ties go to
// whichever kind was declared first. A kind's Effect, if any, runs after its
// match is chosen and before the next kind is tried, and may suppress the
// token (e.g. a comment) or advance the read pointer further (e.g. consuming
// the remainder of a block comment past what the pattern itself matched).
func (s *Scanner) Scan(src string) ([]Token, error) {
	s.input = []rune(src)
	s.pos = 0
	s.line = 1

	var tokens []Token
	for s.pos < len(s.input) {
		idx, length, ok := s.longestMatch()
		if !ok {
			return tokens, &SyntaxError{
				Line: s.line,
				Pos:  s.pos,
				Msg:  fmt.Sprintf("no token kind matches input at position %d", s.pos),
			}
		}

		def := s.defs[idx]
		lexeme := string(s.input[s.pos : s.pos+length])
		startLine := s.line
		s.pos += length

		ctx := &EffectContext{Lexeme: lexeme, scanner: s}
		if def.Effect != nil {
			def.Effect(ctx)
		}
		if !ctx.suppressed {
			tokens = append(tokens, Token{Kind: def.Kind, Lexeme: lexeme, Line: startLine})
		}
	}
	return tokens, nil
}

// longestMatch tries every definition's DFA at the current read pointer and
// returns the index of the one with the farthest-reaching accepting match,
// breaking ties by declaration order (the first definition checked that
// reaches a given length is never displaced by a later one matching the
// same length).
func (s *Scanner) longestMatch() (idx int, length int, ok bool) {
	bestLen := -1
	bestIdx := -1
	for i, def := range s.defs {
		if n, matched := runGreedy(def.dfa, s.input[s.pos:]); matched && n > bestLen {
			bestLen = n
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return 0, 0, false
	}
	return bestIdx, bestLen, true
}

// runGreedy walks dfa over remaining one rune at a time, tracking the
// longest prefix that ends in an accepting state. It stops early the moment
// δ is undefined, since no further input can ever bring the DFA back to life.
func runGreedy(dfa automaton.DFA[fsmutil.SVSet[string]], remaining []rune) (length int, ok bool) {
	cur := dfa.Start
	bestLen := -1
	if dfa.IsAccepting(cur) {
		bestLen = 0
	}
	for i, r := range remaining {
		next := dfa.Next(cur, string(r))
		if next == "" {
			break
		}
		cur = next
		if dfa.IsAccepting(cur) {
			bestLen = i + 1
		}
	}
	if bestLen < 0 {
		return 0, false
	}
	return bestLen, true
}

// Effect runs after its kind's match is selected, with access to the
// in-progress scan via ctx.
type Effect func(ctx *EffectContext)

// EffectContext is the handle an Effect uses to influence the scan it fired
// during: suppress the token it would otherwise emit, note a line break, or
// advance the read pointer past content its own pattern didn't match (a
// block comment's body, for instance).
type EffectContext struct {
	Lexeme     string
	scanner    *Scanner
	suppressed bool
}

// Suppress marks this match as producing no token, for kinds like
// whitespace or comments that exist only to be skipped.
func (c *EffectContext) Suppress() {
	c.suppressed = true
}

// IncrementLine bumps the scanner's current line counter, for a newline
// token kind whose pattern matched the line break itself.
func (c *EffectContext) IncrementLine() {
	c.scanner.line++
}

// AdvanceUntil consumes further input up to and including the first
// occurrence of sentinel, advancing the read pointer (and line counter, for
// any newlines skipped) past it. If sentinel never occurs, it consumes the
// rest of the input. This is for kinds whose pattern matches only an
// opening delimiter (e.g. a block comment's "/*"), leaving the body and
// closing delimiter to be consumed here instead of by the DFA.
func (c *EffectContext) AdvanceUntil(sentinel string) {
	s := c.scanner
	rest := string(s.input[s.pos:])

	idx := strings.Index(rest, sentinel)
	consumed := rest
	if idx != -1 {
		consumed = rest[:idx+len(sentinel)]
	}

	for _, r := range consumed {
		if r == '\n' {
			s.line++
		}
	}
	s.pos += len([]rune(consumed))
}
