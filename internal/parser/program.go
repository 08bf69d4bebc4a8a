package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"rubyfront/grammar"
	"rubyfront/internal/ast"
)

var log = commonlog.GetLogger("rubyfront.parser")

const byteOrderMark = "\uFEFF"

// Result is a successfully parsed program.
type Result struct {
	Program *ast.Program
	// Trailing holds everything after an __END__ line, or nil when the
	// source has no such line.
	Trailing *string
	// Magic holds the settings from the magic comments at the top of the
	// source.
	Magic []grammar.MagicPair
}

type options struct {
	maxDepth int
}

// Option configures Parse.
type Option func(*options)

// WithMaxDepth sets the nesting limit. Values below one select
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, opts ...Option) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, string(src), opts...)
}

// Parse parses a whole program. On failure the error is a *ParseError
// pointing at the furthest position the parser could explain.
func Parse(filename, src string, opts ...Option) (*Result, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	src = strings.TrimPrefix(src, byteOrderMark)
	in := NewInput(filename, src, o.maxDepth)
	log.Debugf("parsing %s (%d bytes)", filename, len(src))

	cur, body, err := compoundStatement(in)
	if err != nil {
		return nil, report(in, err)
	}

	result := &Result{
		Program: &ast.Program{Pos: body.Pos, EndPos: body.EndPos, Body: body},
		Magic:   grammar.LeadingMagicComments(src),
	}

	switch out, data, err := endMarker(cur); {
	case err == nil:
		result.Trailing = &data
		cur = out
	case !cur.AtEOF():
		return nil, report(in, note(cur, expected(spaces(cur), "end of statement")))
	}

	if ast.ContainsPlaceholder(result.Program) {
		return nil, failf(cur, KindPlaceholder, "unresolved placeholder left in syntax tree")
	}
	log.Debugf("parsed %s: %d statements", filename, len(body.Statements))
	return result, nil
}

// ParseExpression parses src as a single statement with nothing after it
// but layout.
func ParseExpression(src string) (ast.Expr, error) {
	in := NewInput("", src, DefaultMaxDepth)
	out, e, err := Statement(layout(in))
	if err != nil {
		return nil, report(in, err)
	}
	if rest := terms(out); !rest.AtEOF() {
		return nil, report(in, note(rest, expected(rest, "end of input")))
	}
	if ast.ContainsPlaceholder(e) {
		return nil, failf(out, KindPlaceholder, "unresolved placeholder left in syntax tree")
	}
	return e, nil
}

// report prefers the furthest recorded failure over err when it lies
// further into the source, or says more at the same place.
func report(in Input, err error) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	if f := in.Meta().track.furthest; f != nil && preferred(f, pe) {
		return f
	}
	return pe
}

// compoundStatement parses statements separated by newlines or ';'. It stops
// at the first thing that is not a statement and leaves it for the caller.
func compoundStatement(in Input) (Input, *ast.Block, error) {
	cur := terms(in)
	block := &ast.Block{Pos: pos(cur)}
	for !cur.AtEOF() && !atEndMarker(cur) {
		next, stmt, err := Statement(cur)
		if err != nil {
			if isCommitted(err) {
				return in, nil, err
			}
			break
		}
		block.Statements = append(block.Statements, stmt)
		cur = next
		if !separator(cur) {
			break
		}
		cur = terms(cur)
	}
	block.EndPos = pos(cur)
	return cur, block, nil
}

func atEndMarker(in Input) bool {
	if !in.AtLineStart() || !in.HasPrefix("__END__") {
		return false
	}
	rest := in.Rest()[len("__END__"):]
	return rest == "" || strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r\n")
}

// endMarker consumes an __END__ line and everything after it, returning the
// data that follows the line.
func endMarker(in Input) (Input, string, error) {
	if !in.HasPrefix("__END__") {
		return in, "", expected(in, "__END__")
	}
	if !in.AtLineStart() {
		return in, "", failf(in, KindNotAtLineStart, "__END__ must be at the beginning of a line")
	}
	if !atEndMarker(in) {
		return in, "", expected(in.AdvanceString("__END__"), "line terminator")
	}
	cur := in.AdvanceString("__END__")
	if next, _, err := lineTerminator(cur); err == nil {
		cur = next
	}
	data := cur.Rest()
	return cur.Advance(len(data)), data, nil
}
