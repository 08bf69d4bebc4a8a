package parser

import (
	"strings"

	"rubyfront/internal/ast"
)

const tabWidth = 8

// heredocOpener parses <<ID, <<-ID, <<~ID and their quoted identifier forms.
func heredocOpener(in Input) (Input, HeredocState, error) {
	if !in.HasPrefix("<<") {
		return in, HeredocState{}, expected(in, "'<<'")
	}
	cur := in.Advance(2)

	hs := HeredocState{QuoteType: '"', Indent: HeredocPlain}
	switch {
	case cur.HasPrefix("-"):
		hs.Indent = HeredocDash
		cur = cur.Advance(1)
	case cur.HasPrefix("~"):
		hs.Indent = HeredocSquiggly
		cur = cur.Advance(1)
	}

	r, _ := cur.Peek()
	switch r {
	case '\'', '"', '`':
		body := cur.Advance(1)
		end := strings.IndexRune(body.Rest(), r)
		if end <= 0 || strings.ContainsAny(body.Rest()[:end], "\r\n") {
			return in, HeredocState{}, expected(body, "heredoc identifier")
		}
		hs.QuoteType = r
		hs.Identifier = body.Rest()[:end]
		return body.Advance(end + 1), hs, nil
	}

	out, name, err := takeWhile1("heredoc identifier", isIdentChar)(cur)
	if err != nil {
		return in, HeredocState{}, err
	}
	if r, _ := cur.Peek(); isDecDigit(r) {
		return in, HeredocState{}, expected(cur, "heredoc identifier")
	}
	hs.Identifier = name
	return out, hs, nil
}

// heredoc reads the body that starts on the line after the opener, or after
// the previous heredoc body when several open on one line. The returned
// cursor stays on the opener line; the next line terminator skips the body.
func heredoc(in Input) (Input, ast.Expr, error) {
	afterOpener, hs, err := heredocOpener(in)
	if err != nil {
		return in, nil, err
	}

	bodyStart := afterOpener.Meta().HeredocResume
	if bodyStart <= afterOpener.Offset() {
		nl := strings.IndexByte(afterOpener.Rest(), '\n')
		if nl < 0 {
			return in, nil, unterminated(in, "heredoc")
		}
		bodyStart = afterOpener.Offset() + nl + 1
	}

	body := afterOpener.AdvanceTo(bodyStart)
	bodyEnd, resume, ok := findTerminator(body.Rest(), hs)
	if !ok {
		return in, nil, unterminated(in, "heredoc")
	}
	bodyEnd += bodyStart
	resume += bodyStart

	if hs.Indent == HeredocSquiggly {
		hs.Dedent = commonIndent(body.Rest()[:bodyEnd-bodyStart])
	}

	_, segs, err := scoped(func(b Input) (Input, []segment, error) {
		return heredocBody(b, bodyEnd)
	}, 0, &hs)(body)
	if err != nil {
		return in, nil, err
	}

	iv := fold(segs)
	var node ast.Expr
	if hs.QuoteType == '`' {
		node = commandNode(iv, pos(in), pos(afterOpener))
	} else {
		node = stringNode(iv, pos(in), pos(afterOpener))
	}

	st := afterOpener.Meta()
	st.HeredocResume = resume
	return afterOpener.WithMeta(st), node, nil
}

// findTerminator scans body lines for the terminator. It returns the offset
// where the terminator line starts and the offset just past it.
func findTerminator(text string, hs HeredocState) (int, int, bool) {
	offset := 0
	for offset < len(text) {
		line := text[offset:]
		next := len(text)
		if nl := strings.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
			next = offset + nl + 1
		}
		candidate := strings.TrimSuffix(line, "\r")
		if hs.Indent != HeredocPlain {
			candidate = strings.TrimLeft(candidate, " \t")
		}
		if candidate == hs.Identifier {
			return offset, next, true
		}
		offset = next
	}
	return 0, 0, false
}

// commonIndent is the smallest leading indentation, in columns, among the
// lines that are not blank. Tabs advance to the next multiple of eight.
func commonIndent(body string) int {
	min := -1
	for _, line := range strings.SplitAfter(body, "\n") {
		width, blank := indentWidth(line)
		if blank {
			continue
		}
		if min < 0 || width < min {
			min = width
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

func indentWidth(line string) (int, bool) {
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width = (width/tabWidth + 1) * tabWidth
		case '\n', '\r':
			return width, true
		default:
			return width, false
		}
	}
	return width, true
}

// dedent skips up to the heredoc's dedent width of indentation at a line
// start. A tab that would overshoot the width is kept.
func dedent(in Input, width int) Input {
	cur := in
	col := 0
	for col < width {
		switch {
		case cur.HasPrefix(" "):
			col++
		case cur.HasPrefix("\t"):
			next := (col/tabWidth + 1) * tabWidth
			if next > width {
				return cur
			}
			col = next
		default:
			return cur
		}
		cur = cur.Advance(1)
	}
	return cur
}

// heredocBody decodes the body between the cursor and end according to the
// heredoc state in the cursor metadata.
func heredocBody(in Input, end int) (Input, []segment, error) {
	hs := in.Meta().Heredoc
	opts := bodyOptions{escapes: escapeFull, interpolate: true, what: "heredoc"}
	if hs.QuoteType == '\'' {
		opts = bodyOptions{escapes: escapeNone, what: "heredoc"}
	}

	var segs []segment
	cur := in
	for cur.Offset() < end {
		if hs.Dedent > 0 && cur.AtLineStart() {
			cur = dedent(cur, hs.Dedent)
			if cur.Offset() >= end {
				break
			}
		}
		next, seg, err := bodySegment(cur, opts)
		if err != nil {
			if isCommitted(err) {
				return in, nil, err
			}
			return in, nil, unterminated(in, "heredoc")
		}
		if next.Offset() > end {
			// an escape or interpolation ran into the terminator line
			return in, nil, unterminated(in, "heredoc")
		}
		segs = append(segs, seg)
		cur = next
	}
	return cur, segs, nil
}
