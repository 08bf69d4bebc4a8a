package parser

import (
	"rubyfront/internal/ast"
	"rubyfront/internal/cursor"
)

// DefaultMaxDepth bounds how deeply expressions may nest before the parser
// gives up with KindTooDeep.
const DefaultMaxDepth = 512

// IndentMode is the flavour of heredoc opener.
type IndentMode int

const (
	HeredocPlain    IndentMode = iota // <<ID, terminator must start in column 1
	HeredocDash                       // <<-ID, terminator may be indented
	HeredocSquiggly                   // <<~ID, body is dedented
)

// HeredocState describes the heredoc whose body is being decoded.
type HeredocState struct {
	QuoteType  rune // '\'', '"' or '`'
	Indent     IndentMode
	Identifier string
	Dedent     int // columns stripped from each body line (<<~ only)
}

// State is the parser-local metadata carried by every cursor.
type State struct {
	// Quote is the opening delimiter of the innermost unfinished
	// percent-literal, or 0.
	Quote   rune
	Heredoc *HeredocState

	// HeredocResume is the byte offset just past the last heredoc body read
	// on the current line. The next line terminator jumps there.
	HeredocResume int

	Depth    int
	MaxDepth int
	Filename string

	track *tracker
}

// Input is the cursor type every parsing function consumes.
type Input = cursor.Cursor[State]

// tracker remembers the failure that got furthest into the source so a
// top-level error can point at the real problem rather than where
// backtracking gave up.
type tracker struct {
	furthest *ParseError
}

func (t *tracker) record(err *ParseError) {
	if t == nil {
		return
	}
	if t.furthest == nil || err.Position.Offset > t.furthest.Position.Offset {
		t.furthest = err
	}
}

// NewInput returns a cursor over src ready for parsing.
func NewInput(filename, src string, maxDepth int) Input {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return cursor.New(src, State{
		MaxDepth: maxDepth,
		Filename: filename,
		track:    &tracker{},
	})
}

func pos(in Input) ast.Position {
	p := in.Position()
	return ast.Position{
		Filename: in.Meta().Filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

// scoped runs p with the quote and heredoc metadata replaced, then puts the
// caller's values back on whatever cursor p hands back.
func scoped[T any](p Parser[T], quote rune, heredoc *HeredocState) Parser[T] {
	return func(in Input) (Input, T, error) {
		saved := in.Meta()
		st := saved
		st.Quote = quote
		st.Heredoc = heredoc

		out, v, err := p(in.WithMeta(st))

		ost := out.Meta()
		ost.Quote = saved.Quote
		ost.Heredoc = saved.Heredoc
		return out.WithMeta(ost), v, err
	}
}

// fresh clears quote and heredoc state for an independent literal.
func fresh[T any](p Parser[T]) Parser[T] {
	return scoped(p, 0, nil)
}

// nested runs p one recursion level deeper, failing with KindTooDeep once
// MaxDepth is reached.
func nested[T any](in Input, p Parser[T]) (Input, T, error) {
	var zero T
	st := in.Meta()
	if st.MaxDepth > 0 && st.Depth >= st.MaxDepth {
		return in, zero, fatalf(in, KindTooDeep, "expression nesting exceeds %d levels", st.MaxDepth)
	}
	st.Depth++

	out, v, err := p(in.WithMeta(st))
	if err != nil {
		return in, zero, err
	}
	ost := out.Meta()
	ost.Depth = in.Meta().Depth
	return out.WithMeta(ost), v, nil
}
