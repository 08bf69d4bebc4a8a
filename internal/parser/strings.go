package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"rubyfront/internal/ast"
)

type escapeMode int

const (
	escapeFull   escapeMode = iota // double-quoted rules
	escapeQuoted                   // only backslash and delimiters
	escapeRegexp                   // kept verbatim apart from the delimiter
	escapeNone                     // backslash is an ordinary character
)

// bodyOptions describes how the content of a quoted literal is read.
type bodyOptions struct {
	opening     rune
	closing     rune
	escapes     escapeMode
	interpolate bool
	what        string
}

// escapable lists the characters the reduced escape set accepts after a
// backslash besides the backslash itself.
func (o bodyOptions) escapable() string {
	return string(o.opening) + string(o.closing)
}

// literalBeginningDelimiter reads the opening delimiter of a percent
// literal. With no literal open any ASCII punctuation is accepted and
// recorded; inside one only the recorded delimiter matches.
func literalBeginningDelimiter(in Input) (Input, rune, error) {
	r, size := in.Peek()
	if size == 0 {
		return in, 0, expected(in, "literal delimiter")
	}
	st := in.Meta()
	if st.Quote != 0 {
		if r != st.Quote {
			return in, 0, expected(in, "'"+string(st.Quote)+"'")
		}
		return in.Advance(size), r, nil
	}
	if r > unicode.MaxASCII || !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
		return in, 0, expected(in, "literal delimiter")
	}
	st.Quote = r
	return in.Advance(size).WithMeta(st), r, nil
}

// literalEndingDelimiter maps an opening delimiter to its closing partner.
func literalEndingDelimiter(open rune) rune {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	}
	return open
}

// literalBody reads content up to the unbalanced closing delimiter and
// returns the cursor after it. Nested occurrences of a bracket pair are
// balanced with a depth counter.
func literalBody(start, in Input, opts bodyOptions) (Input, []segment, error) {
	var segs []segment
	depth := 0
	cur := in
	for {
		r, size := cur.Peek()
		if size == 0 {
			return in, nil, unterminated(start, opts.what)
		}
		if opts.opening != opts.closing && r == opts.opening {
			depth++
		} else if r == opts.closing {
			if depth == 0 {
				return cur.Advance(size), segs, nil
			}
			depth--
		}

		next, seg, err := bodySegment(cur, opts)
		if err != nil {
			if isCommitted(err) {
				return in, nil, err
			}
			return in, nil, unterminated(start, opts.what)
		}
		segs = append(segs, seg)
		cur = next
	}
}

// bodySegment decodes one character, escape or interpolation.
func bodySegment(in Input, opts bodyOptions) (Input, segment, error) {
	if in.HasPrefix("\\") && opts.escapes != escapeNone {
		var (
			out  Input
			text string
			err  error
		)
		switch opts.escapes {
		case escapeFull:
			out, text, err = escapeSequence(in)
		case escapeQuoted:
			out, text, err = quotedEscape(in, opts.escapable())
		case escapeRegexp:
			out, text, err = regexpEscape(in, opts.escapable())
		}
		if err != nil {
			return in, segment{}, err
		}
		return out, segment{kind: segText, text: text, start: pos(in), end: pos(out)}, nil
	}

	if opts.interpolate && in.HasPrefix("#") {
		out, seg, err := interpolation(in)
		if err == nil {
			return out, seg, nil
		}
		if isCommitted(err) {
			return in, segment{}, err
		}
	}

	r, size := in.Peek()
	if size == 0 {
		return in, segment{}, expected(in, "character")
	}
	out := in.Advance(size)
	return out, segment{kind: segChar, text: string(r), start: pos(in), end: pos(out)}, nil
}

func regexpEscape(in Input, delimiters string) (Input, string, error) {
	cur := in.Advance(1)
	r, size := cur.Peek()
	if size == 0 {
		return in, "", expected(cur, "escaped character")
	}
	if strings.ContainsRune(delimiters, r) && r != '\\' {
		return cur.Advance(size), string(r), nil
	}
	return cur.Advance(size), "\\" + string(r), nil
}

// quotedLiteral reads a literal whose delimiter has already been consumed
// and wraps the folded content with build.
func quotedLiteral(start, body Input, opts bodyOptions, build func(interpolatable, ast.Position, ast.Position) ast.Expr) (Input, ast.Expr, error) {
	out, segs, err := literalBody(start, body, opts)
	if err != nil {
		return start, nil, err
	}
	return out, build(fold(segs), pos(start), pos(out)), nil
}

func doubleQuoted(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix(`"`) {
		return in, nil, expected(in, `'"'`)
	}
	return quotedLiteral(in, in.Advance(1), bodyOptions{
		opening: '"', closing: '"', escapes: escapeFull, interpolate: true, what: "string",
	}, stringNode)
}

func singleQuoted(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("'") {
		return in, nil, expected(in, `"'"`)
	}
	return quotedLiteral(in, in.Advance(1), bodyOptions{
		opening: '\'', closing: '\'', escapes: escapeQuoted, what: "string",
	}, stringNode)
}

func backquoted(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("`") {
		return in, nil, expected(in, "'`'")
	}
	return quotedLiteral(in, in.Advance(1), bodyOptions{
		opening: '`', closing: '`', escapes: escapeFull, interpolate: true, what: "command",
	}, commandNode)
}

// percentKinds maps the letter after '%' to how the literal is read. The
// bare form "%(...)" behaves like %Q.
var percentKinds = map[string]struct {
	escapes     escapeMode
	interpolate bool
	what        string
	build       func(interpolatable, ast.Position, ast.Position) ast.Expr
}{
	"q": {escapeQuoted, false, "string", stringNode},
	"Q": {escapeFull, true, "string", stringNode},
	"":  {escapeFull, true, "string", stringNode},
	"x": {escapeFull, true, "command", commandNode},
	"s": {escapeQuoted, false, "symbol", symbolNode},
}

// percentLiteral handles %q %Q % %x and %s.
func percentLiteral(in Input) (Input, ast.Expr, error) {
	if !in.HasPrefix("%") {
		return in, nil, expected(in, "'%'")
	}
	cur := in.Advance(1)
	letter := ""
	if r, _ := cur.Peek(); r < utf8.RuneSelf && unicode.IsLetter(r) {
		letter = string(r)
		cur = cur.Advance(1)
	}
	kind, ok := percentKinds[letter]
	if !ok {
		return in, nil, expected(in.Advance(1), "percent literal type")
	}

	return fresh(func(in2 Input) (Input, ast.Expr, error) {
		body, open, err := literalBeginningDelimiter(cur.WithMeta(in2.Meta()))
		if err != nil {
			return in2, nil, err
		}
		opts := bodyOptions{
			opening:     open,
			closing:     literalEndingDelimiter(body.Meta().Quote),
			escapes:     kind.escapes,
			interpolate: kind.interpolate,
			what:        kind.what,
		}
		out, expr, err := quotedLiteral(in2, body, opts, kind.build)
		if err != nil {
			return in2, nil, err
		}
		return out, expr, nil
	})(in)
}

// stringLiteral parses one string, command or percent literal and then
// concatenates any directly adjacent quoted strings ("a" 'b').
func stringLiteral(in Input) (Input, ast.Expr, error) {
	out, first, err := alt(doubleQuoted, singleQuoted, backquoted, percentLiteral)(in)
	if err != nil {
		return in, nil, err
	}
	if !isStringNode(first) {
		return out, first, nil
	}

	result := first
	for {
		next := spaces(out)
		if next.Offset() == out.Offset() {
			break
		}
		after, more, err := alt(doubleQuoted, singleQuoted)(next)
		if err != nil {
			if isCommitted(err) {
				return in, nil, err
			}
			break
		}
		result = concatStrings(result, more)
		out = after
	}
	return out, result, nil
}

func isStringNode(e ast.Expr) bool {
	switch e.(type) {
	case *ast.StringLit, *ast.InterpolatedString:
		return true
	}
	return false
}

func stringParts(e ast.Expr) []ast.Expr {
	switch n := e.(type) {
	case *ast.StringLit:
		if n.Value == "" {
			return nil
		}
		return []ast.Expr{n}
	case *ast.InterpolatedString:
		return n.Parts
	}
	return nil
}

// concatStrings joins two adjacent string literals, merging the text
// fragments that meet at the seam.
func concatStrings(a, b ast.Expr) ast.Expr {
	start, end := a.NodePos(), b.NodeEndPos()
	if sa, ok := a.(*ast.StringLit); ok {
		if sb, ok := b.(*ast.StringLit); ok {
			return &ast.StringLit{Pos: start, EndPos: end, Value: sa.Value + sb.Value}
		}
	}

	var parts []ast.Expr
	for _, p := range append(stringParts(a), stringParts(b)...) {
		if s, ok := p.(*ast.StringLit); ok && len(parts) > 0 {
			if prev, ok := parts[len(parts)-1].(*ast.StringLit); ok {
				parts[len(parts)-1] = &ast.StringLit{Pos: prev.Pos, EndPos: s.EndPos, Value: prev.Value + s.Value}
				continue
			}
		}
		parts = append(parts, p)
	}
	return &ast.InterpolatedString{Pos: start, EndPos: end, Parts: parts}
}
