package parser

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"rubyfront/internal/ast"
)

type radix struct {
	base     int
	prefixes []string
	digit    func(rune) bool
}

// Prefixed radices are tried before plain decimal so that "0x1F" is not read
// as 0 followed by junk. The bare "0" octal prefix comes last.
var prefixedRadices = []radix{
	{2, []string{"0b", "0B"}, isBinDigit},
	{16, []string{"0x", "0X"}, isHexDigit},
	{10, []string{"0d", "0D"}, isDecDigit},
	{8, []string{"0o", "0O", "0_", "0"}, isOctDigit},
}

func isBinDigit(r rune) bool { return r == '0' || r == '1' }
func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }
func isDecDigit(r rune) bool { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool {
	return isDecDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// digits matches a run of digits where a single '_' may separate two digits.
// A leading, trailing or doubled separator is not part of the match.
func digits(isDigit func(rune) bool) Parser[string] {
	return func(in Input) (Input, string, error) {
		rest := in.Rest()
		n := 0
		for n < len(rest) {
			c := rune(rest[n])
			if isDigit(c) {
				n++
				continue
			}
			if c == '_' && n > 0 && n+1 < len(rest) && isDigit(rune(rest[n+1])) {
				n++
				continue
			}
			break
		}
		if n == 0 {
			return in, "", expected(in, "digit")
		}
		return in.Advance(n), rest[:n], nil
	}
}

// NumericLiteral parses an optionally signed integer or float literal.
func NumericLiteral(in Input) (Input, ast.Expr, error) {
	sign := ""
	cur := in
	if cur.HasPrefix("-") || cur.HasPrefix("+") {
		sign = cur.Rest()[:1]
		cur = cur.Advance(1)
	}

	out, lit, err := unsignedNumeric(cur)
	if err != nil {
		return in, nil, err
	}
	return out, applySign(lit, sign, pos(in)), nil
}

// applySign negates after the magnitude is known, so radix prefixes and
// exponents get the sign right and -0.0 keeps its sign.
func applySign(lit ast.Expr, sign string, start ast.Position) ast.Expr {
	if sign == "" {
		return lit
	}
	switch n := lit.(type) {
	case *ast.IntegerLit:
		v := new(big.Int).Set(n.Value)
		if sign == "-" {
			v.Neg(v)
		}
		return &ast.IntegerLit{Pos: start, EndPos: n.EndPos, Value: v, Raw: sign + n.Raw}
	case *ast.FloatLit:
		v := n.Value
		if sign == "-" {
			v = -v
		}
		return &ast.FloatLit{Pos: start, EndPos: n.EndPos, Value: v, Raw: sign + n.Raw}
	}
	return lit
}

// unsignedNumeric tries float forms before integer forms so "12.0" is never
// an integer followed by ".0".
func unsignedNumeric(in Input) (Input, ast.Expr, error) {
	out, lit, err := alt(floatLiteral, integerLiteral)(in)
	if err != nil {
		return in, nil, err
	}
	if r, size := out.Peek(); size > 0 && isIdentChar(r) {
		return in, nil, fatalf(out, KindInvalidNumber, "numeric literal %q is followed by %q", in.Consumed(out), r)
	}
	return out, lit, nil
}

func floatLiteral(in Input) (Input, ast.Expr, error) {
	mantissa, _, err := digits(isDecDigit)(in)
	if err != nil {
		return in, nil, err
	}

	cur := mantissa
	hasPoint := false
	if cur.HasPrefix(".") {
		if frac, _, err := digits(isDecDigit)(cur.Advance(1)); err == nil {
			cur = frac
			hasPoint = true
		}
	}
	if after, ok := exponent(cur); ok {
		cur = after
	} else if !hasPoint {
		return in, nil, expected(cur, "decimal point or exponent")
	}

	raw := in.Consumed(cur)
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// out-of-range values come back as ±Inf or 0 which is what Ruby gives
		return in, nil, fatalf(in, KindInvalidNumber, "invalid float literal %q", raw)
	}
	return cur, &ast.FloatLit{Pos: pos(in), EndPos: pos(cur), Value: v, Raw: raw}, nil
}

func exponent(in Input) (Input, bool) {
	if !in.HasPrefix("e") && !in.HasPrefix("E") {
		return in, false
	}
	cur := in.Advance(1)
	if cur.HasPrefix("+") || cur.HasPrefix("-") {
		cur = cur.Advance(1)
	}
	out, _, err := digits(isDecDigit)(cur)
	if err != nil {
		return in, false
	}
	return out, true
}

func integerLiteral(in Input) (Input, ast.Expr, error) {
	for _, rx := range prefixedRadices {
		for _, prefix := range rx.prefixes {
			if !in.HasPrefix(prefix) {
				continue
			}
			out, text, err := digits(rx.digit)(in.AdvanceString(prefix))
			if err != nil {
				continue
			}
			return makeInteger(in, out, text, rx.base)
		}
	}

	out, text, err := digits(isDecDigit)(in)
	if err != nil {
		return in, nil, err
	}
	if len(text) > 1 && text[0] == '0' {
		return in, nil, fatalf(in, KindInvalidNumber, "invalid octal digit in %q", text)
	}
	return makeInteger(in, out, text, 10)
}

// makeInteger converts the digit text at arbitrary precision. Digit text the
// radix cannot hold is reported, never truncated.
func makeInteger(start, end Input, text string, base int) (Input, ast.Expr, error) {
	v, ok := new(big.Int).SetString(strings.ReplaceAll(text, "_", ""), base)
	if !ok {
		return start, nil, fatalf(start, KindInvalidNumber, "invalid base-%d digits %q", base, text)
	}
	return end, &ast.IntegerLit{
		Pos:    pos(start),
		EndPos: pos(end),
		Value:  v,
		Raw:    start.Consumed(end),
	}, nil
}
