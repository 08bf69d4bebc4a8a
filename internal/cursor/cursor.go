// Package cursor provides the immutable, position-tracking view over source
// text that every parsing function consumes and returns.
package cursor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in Unicode scalar values
	Offset int // 0-based byte offset into the original text
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Cursor is the remaining source text plus its position and caller-defined
// metadata M. A Cursor is a value: methods never modify the receiver, and the
// remaining text is a substring of the original so no bytes are copied.
type Cursor[M any] struct {
	rest string
	pos  Position
	meta M
}

// New returns a cursor at the start of src.
func New[M any](src string, meta M) Cursor[M] {
	return Cursor[M]{
		rest: src,
		pos:  Position{Line: 1, Column: 1, Offset: 0},
		meta: meta,
	}
}

func (c Cursor[M]) Rest() string       { return c.rest }
func (c Cursor[M]) Position() Position { return c.pos }
func (c Cursor[M]) Offset() int        { return c.pos.Offset }
func (c Cursor[M]) Line() int          { return c.pos.Line }
func (c Cursor[M]) Column() int        { return c.pos.Column }
func (c Cursor[M]) Meta() M            { return c.meta }
func (c Cursor[M]) AtEOF() bool        { return len(c.rest) == 0 }

// AtLineStart reports whether the cursor sits in column 1.
func (c Cursor[M]) AtLineStart() bool { return c.pos.Column == 1 }

// WithMeta returns a copy of c carrying meta.
func (c Cursor[M]) WithMeta(meta M) Cursor[M] {
	c.meta = meta
	return c
}

// Peek decodes the next rune. It returns (utf8.RuneError, 0) at end of input.
func (c Cursor[M]) Peek() (rune, int) {
	if len(c.rest) == 0 {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.rest)
}

func (c Cursor[M]) HasPrefix(s string) bool {
	return strings.HasPrefix(c.rest, s)
}

// Advance consumes n bytes and recomputes line and column from the consumed
// span. n must not exceed len(Rest()).
func (c Cursor[M]) Advance(n int) Cursor[M] {
	if n < 0 || n > len(c.rest) {
		panic(fmt.Sprintf("cursor: advance by %d with %d bytes remaining", n, len(c.rest)))
	}
	if n == 0 {
		return c
	}

	consumed := c.rest[:n]
	c.rest = c.rest[n:]
	c.pos.Offset += n

	lines := strings.Count(consumed, "\n")
	if lines == 0 {
		c.pos.Column += utf8.RuneCountInString(consumed)
		return c
	}

	tail := consumed[strings.LastIndexByte(consumed, '\n')+1:]
	c.pos.Line += lines
	c.pos.Column = utf8.RuneCountInString(tail) + 1
	return c
}

// AdvanceString consumes prefix, which must be a prefix of Rest().
func (c Cursor[M]) AdvanceString(prefix string) Cursor[M] {
	if !strings.HasPrefix(c.rest, prefix) {
		panic(fmt.Sprintf("cursor: %q is not a prefix of the remaining input", prefix))
	}
	return c.Advance(len(prefix))
}

// AdvanceTo moves c forward to an absolute byte offset in the same source.
func (c Cursor[M]) AdvanceTo(offset int) Cursor[M] {
	return c.Advance(offset - c.pos.Offset)
}

// Consumed returns the text between c and a later cursor over the same source.
func (c Cursor[M]) Consumed(later Cursor[M]) string {
	n := later.pos.Offset - c.pos.Offset
	if n < 0 || n > len(c.rest) {
		return ""
	}
	return c.rest[:n]
}
