package parser

import (
	"rubyfront/internal/ast"
)

// Operator method names usable as symbols, longest first.
var operatorSymbols = []string{
	"[]=", "<=>", "===", "[]", "==", "=~", "!~", "!=", "**", "+@", "-@",
	"<<", ">>", "<=", ">=", "+", "-", "*", "/", "%", "<", ">", "!", "~",
	"&", "|", "^", "`",
}

// symbol parses :name, :"..." and :'...' forms. %s is a percent literal.
func symbol(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix(":") || in.HasPrefix("::") {
		return in, nil, expected(in, "symbol")
	}
	cur := in.Advance(1)

	switch r, _ := cur.Peek(); r {
	case ' ', '\t':
		return in, nil, failf(cur, KindSpace, "space is not allowed after ':' in a symbol")
	case '"':
		out, body, err := quotedLiteral(in, cur.Advance(1), bodyOptions{
			opening: '"', closing: '"', escapes: escapeFull, interpolate: true, what: "symbol",
		}, symbolNode)
		if err != nil {
			return in, nil, err
		}
		return out, body, nil
	case '\'':
		out, body, err := quotedLiteral(in, cur.Advance(1), bodyOptions{
			opening: '\'', closing: '\'', escapes: escapeQuoted, what: "symbol",
		}, symbolNode)
		if err != nil {
			return in, nil, err
		}
		return out, body, nil
	}

	out, name, err := alt(recognize(symbolIdentifier), operatorSymbol)(cur)
	if err != nil {
		return in, nil, err
	}
	return out, &ast.SymbolLit{Pos: pos(in), EndPos: pos(out), Name: name}, nil
}

// symbolIdentifier accepts any variable or method name, keywords included.
func symbolIdentifier(in Input) (Input, *ast.Ident, error) {
	return alt(
		methodIdentifier(false),
		assignmentIdentifier(false),
		globalVariable,
		classVariable,
		instanceVariable,
		constantIdentifier(false),
		localIdentifier(false),
	)(in)
}

func operatorSymbol(in Input) (Input, string, error) {
	for _, op := range operatorSymbols {
		if in.HasPrefix(op) {
			return in.AdvanceString(op), op, nil
		}
	}
	return in, "", expected(in, "symbol name")
}

// characterLiteral parses ?a, ?\n and ?\C-a.
func characterLiteral(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("?") {
		return in, nil, expected(in, "'?'")
	}
	cur := in.Advance(1)
	r, size := cur.Peek()
	switch {
	case size == 0:
		return in, nil, expected(cur, "character")
	case r == ' ' || r == '\t':
		return in, nil, failf(cur, KindSpace, "space is not allowed in a character literal")
	case r == '\n' || r == '\r':
		return in, nil, failf(cur, KindLineTerminator, "line terminator is not allowed in a character literal")
	}

	var (
		out   Input
		value string
		err   error
	)
	if r == '\\' {
		out, value, err = escapeSequence(cur)
		if err != nil {
			return in, nil, err
		}
	} else {
		out, value = cur.Advance(size), string(r)
		if next, _ := out.Peek(); isIdentChar(r) && isIdentChar(next) {
			return in, nil, expected(out, "end of character literal")
		}
	}
	return out, &ast.StringLit{Pos: pos(in), EndPos: pos(out), Value: value}, nil
}
