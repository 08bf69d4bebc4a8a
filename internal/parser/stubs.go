package parser

import (
	"rubyfront/internal/ast"
)

// Productions of the statement grammar that are recognised but not built.
// Each fails with a committed KindNotImplemented naming the construct, so
// callers get a precise message instead of a confusing mismatch.
var unimplementedProductions = []struct {
	lead      string
	construct string
}{
	{"if", "if expression"},
	{"unless", "unless expression"},
	{"while", "while loop"},
	{"until", "until loop"},
	{"case", "case expression"},
	{"for", "for loop"},
	{"begin", "begin block"},
	{"def", "method definition"},
	{"class", "class definition"},
	{"module", "module definition"},
	{"return", "return statement"},
	{"break", "break statement"},
	{"next", "next statement"},
	{"redo", "redo statement"},
	{"retry", "retry statement"},
	{"yield", "yield expression"},
	{"super", "super call"},
	{"defined?", "defined? expression"},
	{"alias", "alias statement"},
	{"undef", "undef statement"},
	{"BEGIN", "BEGIN block"},
	{"END", "END block"},
	{"->", "lambda literal"},
}

func notImplemented(in Input) (Input, ast.Expr, error) {
	for _, p := range unimplementedProductions {
		var err error
		if p.lead == "->" {
			_, _, err = tag(p.lead)(in)
		} else {
			_, _, err = word(p.lead)(in)
		}
		if err == nil {
			return in, nil, fatalf(in, KindNotImplemented, "%s is not implemented", p.construct)
		}
	}
	return in, nil, expected(in, "expression")
}
