package parser

import (
	"fmt"

	"rubyfront/internal/cursor"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	KindUnexpectedChar ErrorKind = iota
	KindUnexpectedEOF
	KindSpace
	KindLineTerminator
	KindNotAtLineStart
	KindUnterminated
	KindInvalidNumber
	KindKeyword
	KindNotImplemented
	KindTooDeep
	KindPlaceholder
)

var kindNames = [...]string{
	KindUnexpectedChar: "unexpected character",
	KindUnexpectedEOF:  "unexpected end of input",
	KindSpace:          "unexpected space",
	KindLineTerminator: "unexpected line terminator",
	KindNotAtLineStart: "not at beginning of line",
	KindUnterminated:   "unterminated literal",
	KindInvalidNumber:  "invalid numeric literal",
	KindKeyword:        "reserved word",
	KindNotImplemented: "not implemented",
	KindTooDeep:        "nesting too deep",
	KindPlaceholder:    "internal error",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Code returns the diagnostic code for the kind, E0100 onwards.
func (k ErrorKind) Code() string {
	return fmt.Sprintf("E%04d", 100+int(k))
}

// ParseError is the failure value every parsing function returns.
type ParseError struct {
	Kind     ErrorKind
	Position cursor.Position
	Filename string
	Message  string

	committed bool
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%s: %s", e.Filename, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Committed reports whether the failure happened inside a construct that had
// already been recognised, which stops ordered choice from trying siblings.
func (e *ParseError) Committed() bool { return e.committed }

// Incomplete reports whether more input could turn the failure into a
// success: an open literal or bracket hit end of input.
func (e *ParseError) Incomplete() bool {
	return e.Kind == KindUnterminated || e.Kind == KindUnexpectedEOF
}

func (e *ParseError) generic() bool {
	switch e.Kind {
	case KindUnexpectedChar, KindUnexpectedEOF, KindSpace, KindLineTerminator:
		return true
	}
	return false
}

func (e *ParseError) commit() *ParseError {
	e.committed = true
	return e
}

func failf(at Input, kind ErrorKind, format string, args ...any) *ParseError {
	err := &ParseError{
		Kind:     kind,
		Position: at.Position(),
		Filename: at.Meta().Filename,
		Message:  fmt.Sprintf(format, args...),
	}
	return err
}

// fatalf builds a committed failure and remembers it for error reporting.
func fatalf(at Input, kind ErrorKind, format string, args ...any) *ParseError {
	return note(at, failf(at, kind, format, args...).commit())
}

// note records err as a candidate for the top-level error message.
func note(at Input, err *ParseError) *ParseError {
	at.Meta().track.record(err)
	return err
}

// expected reports a mismatch at the cursor, choosing the end-of-input kind
// when nothing is left.
func expected(at Input, what string) *ParseError {
	if at.AtEOF() {
		return failf(at, KindUnexpectedEOF, "expected %s, found end of input", what)
	}
	r, _ := at.Peek()
	switch r {
	case ' ', '\t':
		return failf(at, KindSpace, "expected %s, found space", what)
	case '\n', '\r':
		return failf(at, KindLineTerminator, "expected %s, found line terminator", what)
	}
	return failf(at, KindUnexpectedChar, "expected %s, found %q", what, r)
}

func unterminated(start Input, what string) *ParseError {
	return fatalf(start, KindUnterminated, "unterminated %s meets end of file", what)
}

// isCommitted reports whether err stops backtracking.
func isCommitted(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.committed
}
