package regexc

import (
	"fmt"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
)

// expandClasses finds every `[...]` span in toks (already validated as
// balanced by tokenize), expands any `a-b` range within it into the
// individual characters from a to b inclusive, tags every resulting member
// as kindInSet, and appends a kindClassEnd sentinel right after the closing
// bracket. The brackets themselves are kept in the stream (concatenation
// insertion still needs to see them) and are stripped by
// stripBracketMarkers afterward.
func expandClasses(toks []token) ([]token, error) {
	var out []token

	for i := 0; i < len(toks); {
		t := toks[i]
		if t.kind != kindLBracket {
			out = append(out, t)
			i++
			continue
		}

		j := i + 1
		for toks[j].kind != kindRBracket {
			j++
		}
		inner := toks[i+1 : j]

		members, err := expandRanges(inner)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, fsmerrors.NewConstructionError(fsmerrors.UnbalancedClass, "empty character class")
		}

		out = append(out, token{kind: kindLBracket})
		for _, m := range members {
			out = append(out, token{kind: kindInSet, val: m})
		}
		out = append(out, token{kind: kindRBracket})
		out = append(out, token{kind: kindClassEnd})

		i = j + 1
	}

	return out, nil
}

// expandRanges walks the tokens between a class's brackets, turning every
// operand-'-'-operand triple into the run of characters it denotes (the
// first must not sort after the second), and passing every other token
// through as a literal member.
func expandRanges(inner []token) ([]string, error) {
	var members []string

	for i := 0; i < len(inner); {
		isRangeTriple := i+2 < len(inner) &&
			inner[i].kind == kindOperand &&
			inner[i+1].kind == kindOperand && inner[i+1].val == "-" &&
			inner[i+2].kind == kindOperand

		if isRangeTriple {
			lo := []rune(inner[i].val)[0]
			hi := []rune(inner[i+2].val)[0]
			if lo > hi {
				return nil, fsmerrors.NewConstructionError(fsmerrors.EmptyRange, fmt.Sprintf("malformed class range %c-%c", lo, hi))
			}
			for c := lo; c <= hi; c++ {
				members = append(members, string(c))
			}
			i += 3
			continue
		}

		members = append(members, inner[i].val)
		i++
	}

	return members, nil
}
