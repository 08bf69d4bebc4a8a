package parser

import (
	"rubyfront/internal/ast"
)

var wordKinds = map[byte]struct {
	escapes     escapeMode
	interpolate bool
	build       func(interpolatable, ast.Position, ast.Position) ast.Expr
}{
	'w': {escapeQuoted, false, stringNode},
	'W': {escapeFull, true, stringNode},
	'i': {escapeQuoted, false, symbolNode},
	'I': {escapeFull, true, symbolNode},
}

func isWordSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

// wordArray parses %w %W %i %I: whitespace-separated elements, each folded
// into its own string or symbol.
func wordArray(in Input) (Input, ast.Expr, error) {
	rest := in.Rest()
	if len(rest) < 2 || rest[0] != '%' {
		return in, nil, expected(in, "word array")
	}
	kind, ok := wordKinds[rest[1]]
	if !ok {
		return in, nil, expected(in.Advance(1), "word array type")
	}

	return fresh(func(start Input) (Input, ast.Expr, error) {
		body, open, err := literalBeginningDelimiter(start.Advance(2))
		if err != nil {
			return start, nil, err
		}
		opts := bodyOptions{
			opening:     open,
			closing:     literalEndingDelimiter(body.Meta().Quote),
			escapes:     kind.escapes,
			interpolate: kind.interpolate,
			what:        "word array",
		}

		var (
			elements []ast.Expr
			word     []segment
			wordFrom Input
			depth    int
		)
		flush := func(at Input) {
			if word == nil {
				return
			}
			elements = append(elements, kind.build(fold(word), pos(wordFrom), pos(at)))
			word = nil
		}

		cur := body
		for {
			r, size := cur.Peek()
			if size == 0 {
				return start, nil, unterminated(start, opts.what)
			}
			if isWordSpace(r) {
				flush(cur)
				cur = cur.Advance(size)
				continue
			}
			if opts.opening != opts.closing && r == opts.opening {
				depth++
			} else if r == opts.closing {
				if depth == 0 {
					flush(cur)
					out := cur.Advance(size)
					return out, &ast.ArrayLit{Pos: pos(start), EndPos: pos(out), Elements: elements}, nil
				}
				depth--
			}

			next, seg, err := wordSegment(cur, opts)
			if err != nil {
				if isCommitted(err) {
					return start, nil, err
				}
				return start, nil, unterminated(start, opts.what)
			}
			if word == nil {
				wordFrom = cur
				word = []segment{}
			}
			word = append(word, seg)
			cur = next
		}
	})(in)
}

// wordSegment is bodySegment plus "\ " for a literal blank in the reduced
// escape set.
func wordSegment(in Input, opts bodyOptions) (Input, segment, error) {
	if opts.escapes == escapeQuoted && in.HasPrefix("\\") {
		cur := in.Advance(1)
		if r, size := cur.Peek(); size > 0 && isWordSpace(r) {
			out := cur.Advance(size)
			return out, segment{kind: segText, text: string(r), start: pos(in), end: pos(out)}, nil
		}
	}
	return bodySegment(in, opts)
}
