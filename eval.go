package drill

import "math"

// tiers are the reduction passes of Evaluate, strongest binding first.
// Exponentiation folds right to left; the other tiers fold left to right.
var tiers = []struct {
	ops       []string
	rightmost bool
}{
	{ops: []string{"**"}, rightmost: true},
	{ops: []string{"*", "/", "//", "%"}},
	{ops: []string{"+", "-"}},
}

// Evaluate reduces a token sequence to a single value, respecting operator
// precedence and associativity. The result is NaN when the sequence is empty
// or does not strictly alternate number, operator, number: a missing operand
// anywhere aborts the whole expression. A bare literal is returned directly.
func Evaluate(tokens []Token) float64 {
	if len(tokens) == 0 {
		return math.NaN()
	}
	if len(tokens) == 1 && tokens[0].kind == tokenNum {
		return tokens[0].num
	}
	work := make([]Token, len(tokens))
	copy(work, tokens)
	for _, tier := range tiers {
		for {
			k := findOp(work, tier.ops, tier.rightmost)
			if k < 0 {
				break
			}
			if k == 0 || k == len(work)-1 {
				return math.NaN()
			}
			l, r := work[k-1], work[k+1]
			if l.kind != tokenNum || r.kind != tokenNum {
				return math.NaN()
			}
			work[k-1] = Num(apply(work[k].op, l.num, r.num))
			work = append(work[:k], work[k+2:]...)
		}
	}
	if len(work) != 1 || work[0].kind != tokenNum {
		return math.NaN()
	}
	return work[0].num
}

// findOp returns the index of the first operator token matching one of ops,
// or the last such index when rightmost is set, or -1.
func findOp(toks []Token, ops []string, rightmost bool) int {
	found := -1
	for i, t := range toks {
		if t.kind != tokenOp {
			continue
		}
		for _, op := range ops {
			if t.op == op {
				if !rightmost {
					return i
				}
				found = i
				break
			}
		}
	}
	return found
}

func apply(op string, a, b float64) float64 {
	switch op {
	case "**":
		return math.Pow(a, b)
	case "*":
		return a * b
	case "/":
		return a / b
	case "//":
		return math.Floor(a / b)
	case "%":
		return floorMod(a, b)
	case "+":
		return a + b
	case "-":
		return a - b
	default:
		return math.NaN()
	}
}

// floorMod is the modulo whose result takes the sign of the divisor, so
// floorMod(-7, 3) is 2 rather than the -1 math.Mod gives.
func floorMod(a, b float64) float64 {
	return math.Mod(math.Mod(a, b)+b, b)
}
