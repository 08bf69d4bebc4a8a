package parser

import (
	"strings"

	"rubyfront/internal/ast"
)

type segmentKind int

const (
	segChar segmentKind = iota
	segText
	segExpr
)

// segment is one unit of literal content: a character, decoded text such as
// an escape, or an embedded expression.
type segment struct {
	kind       segmentKind
	text       string
	expr       ast.Expr
	start, end ast.Position
}

// interpolatable is the fold of a segment list. Without any embedded
// expression it is plain text; otherwise parts alternates text fragments
// (as *ast.StringLit) and expressions.
type interpolatable struct {
	text         string
	parts        []ast.Expr
	interpolated bool
}

// fold coalesces adjacent text, flushing it as one fragment before every
// expression and once more at the end.
func fold(segs []segment) interpolatable {
	var (
		out     interpolatable
		pending strings.Builder
		all     strings.Builder
		open    bool
		from    ast.Position
		to      ast.Position
	)

	flush := func() {
		if !open {
			return
		}
		if pending.Len() > 0 {
			out.parts = append(out.parts, &ast.StringLit{Pos: from, EndPos: to, Value: pending.String()})
		}
		pending.Reset()
		open = false
	}

	for _, s := range segs {
		if s.kind == segExpr {
			flush()
			out.parts = append(out.parts, s.expr)
			out.interpolated = true
			continue
		}
		if !open {
			from = s.start
			open = true
		}
		to = s.end
		pending.WriteString(s.text)
		all.WriteString(s.text)
	}
	flush()

	if !out.interpolated {
		return interpolatable{text: all.String()}
	}
	return out
}

// interpolation recognises #{...}, #@ivar, #@@cvar and #$gvar. A bare '#'
// fails softly so the caller can keep it as a character.
func interpolation(in Input) (Input, segment, error) {
	if !in.HasPrefix("#") {
		return in, segment{}, expected(in, "'#'")
	}
	cur := in.Advance(1)

	var (
		out  Input
		expr ast.Expr
		err  error
	)
	switch {
	case cur.HasPrefix("{"):
		out, expr, err = nested(cur, fresh(embeddedStatements))
		if err != nil {
			return in, segment{}, err
		}
		if expr == nil {
			return out, segment{kind: segText, start: pos(in), end: pos(out)}, nil
		}
	case cur.HasPrefix("@@"):
		var id *ast.Ident
		out, id, err = classVariable(cur)
		expr = id
	case cur.HasPrefix("@"):
		var id *ast.Ident
		out, id, err = instanceVariable(cur)
		expr = id
	case cur.HasPrefix("$"):
		var id *ast.Ident
		out, id, err = globalVariable(cur)
		expr = id
	default:
		return in, segment{}, expected(cur, "'{', '@' or '$'")
	}
	if err != nil {
		return in, segment{}, err
	}
	return out, segment{kind: segExpr, expr: expr, start: pos(in), end: pos(out)}, nil
}

// embeddedStatements parses "{ stmts }" and returns nil for an empty body,
// the statement itself for one statement, or a block.
func embeddedStatements(in Input) (Input, ast.Expr, error) {
	open := in
	cur, block, err := compoundStatement(in.Advance(1))
	if err != nil {
		return in, nil, err
	}
	cur = terms(cur)
	if !cur.HasPrefix("}") {
		if cur.AtEOF() {
			return in, nil, unterminated(open, "interpolation")
		}
		return in, nil, fatalf(cur, KindUnexpectedChar, "expected '}' to close interpolation")
	}
	cur = cur.Advance(1)

	switch len(block.Statements) {
	case 0:
		return cur, nil, nil
	case 1:
		return cur, block.Statements[0], nil
	}
	block.Pos = pos(open)
	block.EndPos = pos(cur)
	return cur, block, nil
}

func stringNode(iv interpolatable, start, end ast.Position) ast.Expr {
	if !iv.interpolated {
		return &ast.StringLit{Pos: start, EndPos: end, Value: iv.text}
	}
	return &ast.InterpolatedString{Pos: start, EndPos: end, Parts: iv.parts}
}

func symbolNode(iv interpolatable, start, end ast.Position) ast.Expr {
	if !iv.interpolated {
		return &ast.SymbolLit{Pos: start, EndPos: end, Name: iv.text}
	}
	return &ast.InterpolatedSymbol{Pos: start, EndPos: end, Parts: iv.parts}
}

func commandNode(iv interpolatable, start, end ast.Position) ast.Expr {
	if !iv.interpolated {
		return &ast.CommandLit{Pos: start, EndPos: end, Value: iv.text}
	}
	return &ast.InterpolatedCommand{Pos: start, EndPos: end, Parts: iv.parts}
}

func regexpNode(iv interpolatable, flags string, start, end ast.Position) ast.Expr {
	parts := iv.parts
	if !iv.interpolated && iv.text != "" {
		parts = []ast.Expr{&ast.StringLit{Pos: start, EndPos: end, Value: iv.text}}
	}
	return &ast.RegexpLit{Pos: start, EndPos: end, Parts: parts, Flags: flags}
}
