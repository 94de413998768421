package drill_test

import (
	"math"
	"testing"

	drill "github.com/o-ludvik/Olivers-pages"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"literal", "42", 42},
		{"decimal", "2.5", 2.5},
		{"add", "4+5+6", 15},
		{"sub", "10-3-2", 5},
		{"mul", "4*5*6", 120},
		{"div", "8/5", 1.6},
		{"chain-div", "100/5/2", 10},
		{"precedence", "2+3*4", 14},
		{"precedence-div", "10-6/3", 8},
		{"pow", "2**10", 1024},
		{"pow-right-assoc", "2**3**2", 512},
		{"pow-before-mul", "2*3**2", 18},
		{"floordiv", "7//2", 3},
		{"floordiv-exact", "8//2", 4},
		{"mod", "7%3", 1},
		{"mod-pow", "2**5%7", 4},
		{"mixed", "10-3+8", 15},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := drill.Evaluate(drill.Tokenize(c.src))
			if got != c.r {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.r, got)
			}
		})
	}
}

func TestEvaluateNegativeOperands(t *testing.T) {
	// The tokenizer has no unary minus, so negative operands enter as
	// literal tokens.
	cases := []struct {
		name string
		toks []drill.Token
		r    float64
	}{
		{"floordiv", []drill.Token{drill.Num(-7), drill.Op("//"), drill.Num(2)}, -4},
		{"floormod", []drill.Token{drill.Num(-7), drill.Op("%"), drill.Num(3)}, 2},
		{"floormod-neg-divisor", []drill.Token{drill.Num(7), drill.Op("%"), drill.Num(-3)}, -2},
		{"add", []drill.Token{drill.Num(-4), drill.Op("+"), drill.Num(9)}, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := drill.Evaluate(c.toks); got != c.r {
				t.Errorf("want %g, got %g", c.r, got)
			}
		})
	}
}

func TestEvaluateMalformed(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"op-only", "+"},
		{"leading-op", "+2"},
		{"trailing-op", "2+"},
		{"doubled-op", "2++3"},
		{"adjacent-nums", "2 3"},
		{"split-pow", "2***3"},
		{"bad-literal", "1.2.3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := drill.Evaluate(drill.Tokenize(c.src)); !math.IsNaN(got) {
				t.Errorf("evaluating %q: want NaN, got %g", c.src, got)
			}
		})
	}
}

func TestEvaluateNonFinite(t *testing.T) {
	// Division by zero is not an error; it propagates as an infinity and
	// fails the equation check downstream.
	if got := drill.Evaluate(drill.Tokenize("1/0")); !math.IsInf(got, 1) {
		t.Errorf("evaluating 1/0: want +Inf, got %g", got)
	}
	if got := drill.Evaluate(drill.Tokenize("0/0")); !math.IsNaN(got) {
		t.Errorf("evaluating 0/0: want NaN, got %g", got)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	b.ReportAllocs()
	toks := drill.Tokenize("2+3*4-10//3+2**3**2%7")
	for i := 0; i < b.N; i++ {
		drill.Evaluate(toks)
	}
}
