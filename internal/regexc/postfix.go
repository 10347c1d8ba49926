package regexc

import "github.com/dekarrin/carpfsm/internal/fsmerrors"

// insertConcatenation inserts an explicit kindConcat token between every
// adjacent pair (x, y) where x closes an operand-like construct (a literal,
// a star/plus repetition, or a parenthesised/bracketed group) and y opens
// one, per the precedence table in the regex compiler's pipeline.
func insertConcatenation(toks []token) []token {
	xTriggers := map[tokenKind]bool{kindOperand: true, kindStar: true, kindPlus: true, kindRParen: true, kindClassEnd: true}
	yTriggers := map[tokenKind]bool{kindOperand: true, kindLParen: true, kindLBracket: true}

	var out []token
	for i, t := range toks {
		out = append(out, t)
		if i+1 < len(toks) && xTriggers[t.kind] && yTriggers[toks[i+1].kind] {
			out = append(out, token{kind: kindConcat})
		}
	}
	return out
}

// stripBracketMarkers removes the now-redundant kindLBracket/kindRBracket
// tokens; they exist only to drive insertConcatenation, since class members
// become plain kindInSet operands terminated by kindClassEnd.
func stripBracketMarkers(toks []token) []token {
	out := make([]token, 0, len(toks))
	for _, t := range toks {
		if t.kind == kindLBracket || t.kind == kindRBracket {
			continue
		}
		out = append(out, t)
	}
	return out
}

var precedence = map[tokenKind]int{
	kindAlt:      2,
	kindConcat:   3,
	kindStar:     4,
	kindPlus:     4,
	kindClassEnd: 5,
}

func isOperator(k tokenKind) bool {
	_, ok := precedence[k]
	return ok
}

// toPostfix runs the shunting-yard algorithm over toks using the precedence
// table above; kindStar, kindPlus and kindClassEnd are unary postfix
// operators, kindAlt and kindConcat are binary infix operators, all
// left-associative.
func toPostfix(toks []token) ([]token, error) {
	var output []token
	var ops []token

	popWhile := func(cond func(top token) bool) {
		for len(ops) > 0 && cond(ops[len(ops)-1]) {
			output = append(output, ops[len(ops)-1])
			ops = ops[:len(ops)-1]
		}
	}

	for _, t := range toks {
		switch {
		case t.kind == kindOperand || t.kind == kindInSet:
			output = append(output, t)
		case t.kind == kindLParen:
			ops = append(ops, t)
		case t.kind == kindRParen:
			popWhile(func(top token) bool { return top.kind != kindLParen })
			if len(ops) == 0 {
				return nil, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "unbalanced parentheses")
			}
			ops = ops[:len(ops)-1]
		case isOperator(t.kind):
			popWhile(func(top token) bool {
				return isOperator(top.kind) && precedence[top.kind] >= precedence[t.kind]
			})
			ops = append(ops, t)
		default:
			return nil, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "unexpected token in pattern")
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.kind == kindLParen {
			return nil, fsmerrors.NewConstructionError(fsmerrors.MalformedRegex, "unbalanced parentheses")
		}
		output = append(output, top)
	}

	return output, nil
}
