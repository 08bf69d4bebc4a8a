package parser

import "strings"

// lineTerminator consumes "\n" or "\r\n". When a heredoc body was read on the
// line being left, the cursor jumps past that body.
func lineTerminator(in Input) (Input, string, error) {
	var n int
	switch {
	case in.HasPrefix("\n"):
		n = 1
	case in.HasPrefix("\r\n"):
		n = 2
	default:
		return in, "", expected(in, "line terminator")
	}

	out := in.Advance(n)
	st := out.Meta()
	if st.HeredocResume > out.Offset() {
		out = out.AdvanceTo(st.HeredocResume)
	}
	if st.HeredocResume != 0 {
		st.HeredocResume = 0
		out = out.WithMeta(st)
	}
	return out, in.Consumed(out), nil
}

// spaces skips blanks and backslash-newline continuations, but never a bare
// line terminator: a newline ends a statement.
func spaces(in Input) Input {
	cur := in
	for {
		switch {
		case cur.HasPrefix(" "), cur.HasPrefix("\t"), cur.HasPrefix("\f"), cur.HasPrefix("\v"):
			cur = cur.Advance(1)
		case cur.HasPrefix("\r") && !cur.HasPrefix("\r\n"):
			cur = cur.Advance(1)
		case cur.HasPrefix("\\\n"), cur.HasPrefix("\\\r\n"):
			next, _, err := lineTerminator(cur.Advance(1))
			if err != nil {
				return cur
			}
			cur = next
		default:
			return cur
		}
	}
}

// comment consumes a '#' comment up to, but not including, the line
// terminator.
func comment(in Input) (Input, string, error) {
	if !in.HasPrefix("#") {
		return in, "", expected(in, "comment")
	}
	rest := in.Rest()
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		end = len(rest)
	}
	if end > 0 && rest[end-1] == '\r' {
		end--
	}
	return in.Advance(end), rest[:end], nil
}

// embeddedDocument consumes a =begin ... =end block. Both markers must start
// in column 1.
func embeddedDocument(in Input) (Input, string, error) {
	if !in.HasPrefix("=begin") || !markerEnds(in.Rest()[len("=begin"):]) {
		return in, "", expected(in, "=begin")
	}
	if !in.AtLineStart() {
		return in, "", failf(in, KindNotAtLineStart, "=begin must be at the beginning of a line")
	}

	cur := in
	for {
		rest := cur.Rest()
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return in, "", unterminated(in, "embedded document")
		}
		cur = cur.Advance(nl + 1)
		if cur.HasPrefix("=end") && markerEnds(cur.Rest()[len("=end"):]) {
			// the rest of the =end line belongs to the comment
			line := cur.Rest()
			end := strings.IndexByte(line, '\n')
			if end < 0 {
				end = len(line)
			}
			cur = cur.Advance(end)
			return cur, in.Consumed(cur), nil
		}
	}
}

func markerEnds(rest string) bool {
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r'
}

// layout skips everything that cannot end an expression early: blanks,
// line terminators, comments and embedded documents. It is used after
// binary operators and inside brackets.
func layout(in Input) Input {
	cur := in
	for {
		next := spaces(cur)
		if n, _, err := lineTerminator(next); err == nil {
			next = n
		} else if n, _, err := comment(next); err == nil {
			next = n
		} else if n, _, err := embeddedDocument(next); err == nil {
			next = n
		} else if pe, ok := err.(*ParseError); ok && pe.Kind == KindNotAtLineStart {
			note(next, pe)
		}
		if next.Offset() == cur.Offset() {
			return cur
		}
		cur = next
	}
}

// terms skips statement separators together with any layout around them.
func terms(in Input) Input {
	cur := in
	for {
		next := layout(cur)
		if next.HasPrefix(";") {
			next = next.Advance(1)
		}
		if next.Offset() == cur.Offset() {
			return cur
		}
		cur = next
	}
}

// separator reports whether a statement ends at the cursor: a line
// terminator, a ';', a comment running to the end of the line, or end of
// input.
func separator(in Input) bool {
	cur := spaces(in)
	if cur.AtEOF() || cur.HasPrefix(";") || cur.HasPrefix("#") {
		return true
	}
	_, _, err := lineTerminator(cur)
	return err == nil
}
