package parser

import (
	"strconv"

	"rubyfront/internal/ast"
)

// primary tries each operand form in a fixed order; the first that matches
// wins. Forms that are textual prefixes of others come later.
func primary(in Input) (Input, ast.Expr, error) {
	out, e, err := alt(
		unsignedNumeric,
		stringLiteral,
		heredoc,
		symbol,
		wordArray,
		regexpLiteral,
		characterLiteral,
		arrayLiteral,
		hashLiteral,
		pseudoVariable,
		variable,
		parenExpression,
		notImplemented,
	)(in)
	if err == nil {
		return out, e, nil
	}

	pe, ok := err.(*ParseError)
	if !ok || pe.committed {
		return in, nil, err
	}
	if pe.generic() {
		pe = expected(in, "expression")
	}
	return in, nil, note(in, pe)
}

func pseudoVariable(in Input) (Input, ast.Expr, error) {
	for _, name := range []string{"nil", "true", "false", "self", "__FILE__", "__LINE__", "__ENCODING__"} {
		out, _, err := word(name)(in)
		if err != nil {
			continue
		}
		start, end := pos(in), pos(out)
		switch name {
		case "nil":
			return out, &ast.NilLit{Pos: start, EndPos: end}, nil
		case "true", "false":
			return out, &ast.BoolLit{Pos: start, EndPos: end, Value: name == "true"}, nil
		case "self":
			return out, &ast.SelfExpr{Pos: start, EndPos: end}, nil
		case "__FILE__":
			return out, &ast.PseudoVar{Pos: start, EndPos: end, Name: name, Value: in.Meta().Filename}, nil
		case "__LINE__":
			return out, &ast.PseudoVar{Pos: start, EndPos: end, Name: name, Value: strconv.Itoa(in.Line())}, nil
		default:
			return out, &ast.PseudoVar{Pos: start, EndPos: end, Name: name, Value: "UTF-8"}, nil
		}
	}
	return in, nil, expected(in, "pseudo variable")
}

// variable reads a variable or method name. Setter names are not values. A
// reserved method-shaped word such as defined? is left for the keyword
// productions.
func variable(in Input) (Input, ast.Expr, error) {
	out, id, err := methodIdentifier(true)(in)
	if err == nil {
		return out, id, nil
	}
	if pe, ok := err.(*ParseError); ok && pe.Kind == KindKeyword {
		return in, nil, err
	}
	out, id, err = variableIdentifier(in)
	if err != nil {
		return in, nil, err
	}
	return out, id, nil
}

// closing expects the bracket that ends a construct opened at start.
func closing(start, at Input, bracket, what string) (Input, error) {
	cur := layout(at)
	if cur.HasPrefix(bracket) {
		return cur.AdvanceString(bracket), nil
	}
	if cur.AtEOF() {
		return start, unterminated(start, what)
	}
	return start, fatalf(cur, KindUnexpectedChar, "expected '%s' to close %s", bracket, what)
}

func parenExpression(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("(") {
		return in, nil, expected(in, "'('")
	}
	return nested(in, func(open Input) (Input, ast.Expr, error) {
		cur, body, err := compoundStatement(open.Advance(1))
		if err != nil {
			return open, nil, err
		}
		out, err := closing(open, terms(cur), ")", "parenthesis")
		if err != nil {
			return open, nil, err
		}
		return out, &ast.ParenExpr{Pos: pos(open), EndPos: pos(out), Body: body}, nil
	})
}

// sequence reads comma-separated items up to the closing bracket. A trailing
// comma is allowed.
func sequence[T any](open Input, item Parser[T], bracket, what string) (Input, []T, error) {
	var items []T
	cur := layout(open.Advance(1))
	for !cur.HasPrefix(bracket) {
		next, v, err := item(cur)
		if err != nil {
			if isCommitted(err) {
				return open, nil, err
			}
			break
		}
		items = append(items, v)
		cur = layout(next)
		if !cur.HasPrefix(",") {
			break
		}
		cur = layout(cur.Advance(1))
	}
	out, err := closing(open, cur, bracket, what)
	if err != nil {
		return open, nil, err
	}
	return out, items, nil
}

func arrayLiteral(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("[") {
		return in, nil, expected(in, "'['")
	}
	return nested(in, func(open Input) (Input, ast.Expr, error) {
		out, elems, err := sequence(open, assignment, "]", "array")
		if err != nil {
			return open, nil, err
		}
		return out, &ast.ArrayLit{Pos: pos(open), EndPos: pos(out), Elements: elems}, nil
	})
}

func hashLiteral(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("{") {
		return in, nil, expected(in, "'{'")
	}
	return nested(in, func(open Input) (Input, ast.Expr, error) {
		out, pairs, err := sequence(open, alt(labelPair, arrowPair), "}", "hash")
		if err != nil {
			return open, nil, err
		}
		return out, &ast.HashLit{Pos: pos(open), EndPos: pos(out), Pairs: pairs}, nil
	})
}

// labelPair is "key: value" or "\"key\": value".
func labelPair(in Input) (Input, *ast.HashPair, error) {
	var (
		afterKey Input
		key      ast.Expr
	)
	if out, name, err := recognize(symbolIdentifier)(in); err == nil && out.HasPrefix(":") && !out.HasPrefix("::") {
		afterKey = out.Advance(1)
		key = &ast.SymbolLit{Pos: pos(in), EndPos: pos(out), Name: name}
	} else if out, s, err := alt(doubleQuoted, singleQuoted)(in); err == nil && out.HasPrefix(":") && !out.HasPrefix("::") {
		afterKey = out.Advance(1)
		key = stringToSymbol(s)
	} else {
		return in, nil, expected(in, "hash label")
	}

	out, value, err := assignment(layout(afterKey))
	if err != nil {
		return in, nil, err
	}
	return out, &ast.HashPair{Pos: pos(in), EndPos: value.NodeEndPos(), Key: key, Value: value}, nil
}

func stringToSymbol(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.StringLit:
		return &ast.SymbolLit{Pos: n.Pos, EndPos: n.EndPos, Name: n.Value}
	case *ast.InterpolatedString:
		return &ast.InterpolatedSymbol{Pos: n.Pos, EndPos: n.EndPos, Parts: n.Parts}
	}
	return e
}

// arrowPair is "key => value".
func arrowPair(in Input) (Input, *ast.HashPair, error) {
	afterKey, key, err := assignment(in)
	if err != nil {
		return in, nil, err
	}
	arrow := layout(afterKey)
	if !arrow.HasPrefix("=>") {
		return in, nil, fatalf(arrow, KindUnexpectedChar, "expected '=>' after hash key")
	}
	out, value, err := assignment(layout(arrow.Advance(2)))
	if err != nil {
		if isCommitted(err) {
			return in, nil, err
		}
		return in, nil, fatalf(layout(arrow.Advance(2)), KindUnexpectedChar, "expected hash value")
	}
	return out, &ast.HashPair{Pos: key.NodePos(), EndPos: value.NodeEndPos(), Key: key, Value: value}, nil
}
