package drill

import (
	"math"
	"strconv"
	"strings"
)

// Token is one element of a scanned expression: a numeric literal or an
// operator symbol.
type Token struct {
	kind tokenKind
	op   string
	num  float64
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenNum is a decimal literal.
	tokenNum
	// tokenOp is an operator symbol.
	tokenOp
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Num creates a numeric literal token.
func Num(v float64) Token {
	return Token{kind: tokenNum, num: v}
}

// Op creates an operator token. The symbol is not validated; unknown symbols
// make any expression containing them evaluate to NaN.
func Op(sym string) Token {
	return Token{kind: tokenOp, op: sym}
}

func (t Token) String() string {
	if t.kind == tokenNum {
		return t.kind.String() + ":" + strconv.FormatFloat(t.num, 'g', -1, 64)
	}
	return t.kind.String() + ":" + t.op
}

// Operators contains the single-byte operator symbols. The two-character
// operators "//" and "**" are recognized before these.
const Operators = "+-*/%"

// Tokenize scans an expression into literal and operator tokens. Consecutive
// digits and decimal points form one literal. Any byte that is neither part
// of a number nor an operator is dropped without error, so whitespace and
// stray characters are lossy but never fatal. Empty input yields no tokens.
func Tokenize(src string) []Token {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case '0' <= c && c <= '9', c == '.':
			j := i + 1
			for j < len(src) && ('0' <= src[j] && src[j] <= '9' || src[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(src[i:j], 64)
			if err != nil {
				// Doubled dots and bare "." stay in the stream as NaN
				// literals and poison their expression.
				v = math.NaN()
			}
			toks = append(toks, Num(v))
			i = j
		case i+1 < len(src) && (src[i:i+2] == "//" || src[i:i+2] == "**"):
			toks = append(toks, Op(src[i:i+2]))
			i += 2
		case strings.IndexByte(Operators, c) >= 0:
			toks = append(toks, Op(string(c)))
			i++
		default:
			i++
		}
	}
	return toks
}
