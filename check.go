package drill

import (
	"math"
	"strings"
)

// tolerance is the absolute slack allowed between the two sides of an
// equation. Operands in this domain are small, so absolute rather than
// relative comparison is enough.
const tolerance = 1e-9

// CheckEquation reports whether an equation string holds. The string is split
// on its first "=": both sides must be non-empty after trimming, and both
// must evaluate to a number. Anything else, including a second "=" poisoning
// the right side, is simply not a true equation.
func CheckEquation(s string) bool {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return false
	}
	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])
	if left == "" || right == "" {
		return false
	}
	l := Evaluate(Tokenize(left))
	r := Evaluate(Tokenize(right))
	if math.IsNaN(l) || math.IsNaN(r) {
		return false
	}
	return math.Abs(l-r) < tolerance
}
