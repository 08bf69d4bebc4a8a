package parser

import (
	"strings"

	"rubyfront/internal/ast"
)

const regexpFlags = "imxounse"

func regexpFlagsAt(in Input) (Input, string) {
	rest := in.Rest()
	n := 0
	for n < len(rest) && strings.IndexByte(regexpFlags, rest[n]) >= 0 {
		n++
	}
	return in.Advance(n), rest[:n]
}

// regexpLiteral parses /.../flags in operand position and %r{...}flags.
func regexpLiteral(in Input) (Input, ast.Expr, error) {
	var (
		body Input
		opts = bodyOptions{escapes: escapeRegexp, interpolate: true, what: "regexp"}
	)

	run := func(start Input) (Input, ast.Expr, error) {
		switch {
		case start.HasPrefix("/"):
			body = start.Advance(1)
			opts.opening, opts.closing = '/', '/'
		case start.HasPrefix("%r"):
			var open rune
			var err error
			body, open, err = literalBeginningDelimiter(start.Advance(2))
			if err != nil {
				return start, nil, err
			}
			opts.opening, opts.closing = open, literalEndingDelimiter(body.Meta().Quote)
		default:
			return start, nil, expected(start, "regexp")
		}

		out, segs, err := literalBody(start, body, opts)
		if err != nil {
			return start, nil, err
		}
		out, flags := regexpFlagsAt(out)
		return out, regexpNode(fold(segs), flags, pos(start), pos(out)), nil
	}
	return fresh(run)(in)
}
