package regexc

import "github.com/dekarrin/carpfsm/internal/fsmerrors"

type tokenKind int

const (
	kindOperand tokenKind = iota
	kindInSet
	kindAlt
	kindConcat
	kindStar
	kindPlus
	kindLParen
	kindRParen
	kindLBracket
	kindRBracket
	kindClassEnd
)

type token struct {
	kind tokenKind
	val  string
}

// tokenize splits pattern into a raw token stream, handling backslash escapes
// (the escaped character is always emitted as a literal operand, regardless
// of whether it would otherwise be a metacharacter) and tracking whether the
// scan is inside a `[...]` class, where every character other than the
// closing `]` is literal.
func tokenize(pattern string) ([]token, error) {
	var toks []token
	runes := []rune(pattern)
	inClass := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' {
			i++
			if i >= len(runes) {
				return nil, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "dangling escape at end of pattern")
			}
			toks = append(toks, token{kind: kindOperand, val: string(runes[i])})
			continue
		}

		if inClass {
			if r == ']' {
				toks = append(toks, token{kind: kindRBracket})
				inClass = false
			} else {
				toks = append(toks, token{kind: kindOperand, val: string(r)})
			}
			continue
		}

		switch r {
		case '|':
			toks = append(toks, token{kind: kindAlt})
		case '*':
			toks = append(toks, token{kind: kindStar})
		case '+':
			toks = append(toks, token{kind: kindPlus})
		case '(':
			toks = append(toks, token{kind: kindLParen})
		case ')':
			toks = append(toks, token{kind: kindRParen})
		case '[':
			toks = append(toks, token{kind: kindLBracket})
			inClass = true
		case ']':
			return nil, fsmerrors.NewConstructionError(fsmerrors.UnbalancedClass, "unmatched ']'")
		default:
			toks = append(toks, token{kind: kindOperand, val: string(r)})
		}
	}

	if inClass {
		return nil, fsmerrors.NewConstructionError(fsmerrors.UnbalancedClass, "unterminated character class")
	}

	return toks, nil
}
