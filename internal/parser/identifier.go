package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"rubyfront/internal/ast"
)

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isConstantStart(r rune) bool {
	return unicode.IsUpper(r)
}

// identifierText matches [letter_][letter digit _]*.
func identifierText(in Input) (Input, string, error) {
	r, _ := in.Peek()
	if !isIdentStart(r) {
		return in, "", expected(in, "identifier")
	}
	return takeWhile1("identifier", isIdentChar)(in)
}

func makeIdent(start, end Input, kind ast.IdentKind, name string) *ast.Ident {
	return &ast.Ident{Pos: pos(start), EndPos: pos(end), Kind: kind, Name: name}
}

// rejectKeyword fails with KindKeyword when the whole of name is a reserved
// word. Symbols pass check=false because :if and :nil are fine.
func rejectKeyword(in Input, name string, check bool) error {
	if check && IsKeyword(name) {
		return failf(in, KindKeyword, "%q is a reserved word", name)
	}
	return nil
}

// localIdentifier matches names starting with a lowercase letter, '_' or a
// non-ASCII letter that is not uppercase.
func localIdentifier(check bool) Parser[*ast.Ident] {
	return func(in Input) (Input, *ast.Ident, error) {
		r, _ := in.Peek()
		if isConstantStart(r) {
			return in, nil, expected(in, "local variable")
		}
		out, name, err := identifierText(in)
		if err != nil {
			return in, nil, err
		}
		if err := rejectKeyword(in, name, check); err != nil {
			return in, nil, err
		}
		return out, makeIdent(in, out, ast.LocalVar, name), nil
	}
}

func constantIdentifier(check bool) Parser[*ast.Ident] {
	return func(in Input) (Input, *ast.Ident, error) {
		r, _ := in.Peek()
		if !isConstantStart(r) {
			return in, nil, expected(in, "constant")
		}
		out, name, err := identifierText(in)
		if err != nil {
			return in, nil, err
		}
		if err := rejectKeyword(in, name, check); err != nil {
			return in, nil, err
		}
		return out, makeIdent(in, out, ast.Constant, name), nil
	}
}

// methodIdentifier matches name! and name?. The suffix is not taken when an
// '=' follows, so "a!=b" and "a?==b" keep their operators.
func methodIdentifier(check bool) Parser[*ast.Ident] {
	return func(in Input) (Input, *ast.Ident, error) {
		out, name, err := identifierText(in)
		if err != nil {
			return in, nil, err
		}
		if !out.HasPrefix("!") && !out.HasPrefix("?") {
			return in, nil, expected(in, "'!' or '?'")
		}
		if strings.HasPrefix(out.Rest()[1:], "=") {
			return in, nil, expected(in, "method name")
		}
		out = out.Advance(1)
		name = in.Consumed(out)
		if err := rejectKeyword(in, name, check); err != nil {
			return in, nil, err
		}
		return out, makeIdent(in, out, ast.MethodName, name), nil
	}
}

// assignmentIdentifier matches name= as in a setter. The '=' is not taken
// when it starts "==", "=~" or "=>".
func assignmentIdentifier(check bool) Parser[*ast.Ident] {
	return func(in Input) (Input, *ast.Ident, error) {
		out, name, err := identifierText(in)
		if err != nil {
			return in, nil, err
		}
		if !out.HasPrefix("=") {
			return in, nil, expected(in, "'='")
		}
		if next := out.Rest()[1:]; next != "" && strings.ContainsRune("=~>", rune(next[0])) {
			return in, nil, expected(in, "setter name")
		}
		if err := rejectKeyword(in, name, check); err != nil {
			return in, nil, err
		}
		out = out.Advance(1)
		return out, makeIdent(in, out, ast.AssignMethodName, name+"="), nil
	}
}

// specialGlobals are the punctuation globals such as $! and $~.
const specialGlobals = "~*$?!@/\\;,.=:<>\"&`'+0_"

func globalVariable(in Input) (Input, *ast.Ident, error) {
	if !in.HasPrefix("$") {
		return in, nil, expected(in, "'$'")
	}
	cur := in.Advance(1)

	// $-w style option globals
	if cur.HasPrefix("-") {
		if r, size := cur.Advance(1).Peek(); size > 0 && isIdentChar(r) {
			out := cur.Advance(1 + size)
			return out, makeIdent(in, out, ast.GlobalVar, in.Consumed(out)), nil
		}
		return in, nil, expected(cur.Advance(1), "global variable name")
	}

	// $1, $2 ... back references
	if out, _, err := takeWhile1("digit", isDecDigit)(cur); err == nil {
		if r, _ := cur.Peek(); r != '0' {
			return out, makeIdent(in, out, ast.GlobalVar, in.Consumed(out)), nil
		}
	}

	if out, _, err := identifierText(cur); err == nil {
		return out, makeIdent(in, out, ast.GlobalVar, in.Consumed(out)), nil
	}

	r, size := cur.Peek()
	if size > 0 && r < utf8.RuneSelf && strings.ContainsRune(specialGlobals, r) {
		out := cur.Advance(size)
		return out, makeIdent(in, out, ast.GlobalVar, in.Consumed(out)), nil
	}
	return in, nil, expected(cur, "global variable name")
}

func classVariable(in Input) (Input, *ast.Ident, error) {
	return sigilVariable(in, "@@", ast.ClassVar)
}

func instanceVariable(in Input) (Input, *ast.Ident, error) {
	if in.HasPrefix("@@") {
		return in, nil, expected(in, "instance variable")
	}
	return sigilVariable(in, "@", ast.InstanceVar)
}

func sigilVariable(in Input, sigil string, kind ast.IdentKind) (Input, *ast.Ident, error) {
	if !in.HasPrefix(sigil) {
		return in, nil, expected(in, "'"+sigil+"'")
	}
	cur := in.AdvanceString(sigil)
	if r, _ := cur.Peek(); isDecDigit(r) {
		return in, nil, expected(cur, "variable name")
	}
	out, _, err := identifierText(cur)
	if err != nil {
		return in, nil, err
	}
	return out, makeIdent(in, out, kind, in.Consumed(out)), nil
}

// Identifier recognises every identifier form. Method and setter names come
// first because plain names are prefixes of them. Reserved words are
// rejected, including "defined?" whose plain prefix is not reserved.
func Identifier(in Input) (Input, *ast.Ident, error) {
	for _, p := range []Parser[*ast.Ident]{methodIdentifier(true), assignmentIdentifier(true)} {
		out, id, err := p(in)
		if err == nil {
			return out, id, nil
		}
		if pe, ok := err.(*ParseError); ok && pe.Kind == KindKeyword {
			return in, nil, err
		}
	}
	return variableIdentifier(in)
}

// variableIdentifier is every form that can be read as a value; setter
// names are excluded.
func variableIdentifier(in Input) (Input, *ast.Ident, error) {
	return alt(
		globalVariable,
		classVariable,
		instanceVariable,
		constantIdentifier(true),
		localIdentifier(true),
	)(in)
}
