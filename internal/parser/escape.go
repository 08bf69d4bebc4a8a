package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var namedEscapes = map[byte]string{
	'\\': "\\",
	'n':  "\n",
	't':  "\t",
	'r':  "\r",
	'f':  "\f",
	'v':  "\v",
	'a':  "\a",
	'e':  "\x1b",
	'b':  "\b",
	's':  " ",
}

// byteRune turns a byte-valued escape into the code point with that value.
func byteRune(b byte) string {
	return string(rune(b))
}

// escapeSequence decodes one backslash escape. Alternatives are tried from
// most to least specific; anything unrecognised decodes to the escaped
// character without its backslash.
func escapeSequence(in Input) (Input, string, error) {
	if !in.HasPrefix("\\") {
		return in, "", expected(in, "escape sequence")
	}
	return alt(
		namedEscape,
		escapedLineTerminator,
		octalEscape,
		hexEscape,
		unicodeEscape,
		unicodeListEscape,
		mapP(controlMetaEscape, byteRune),
		plainEscape,
	)(in)
}

func namedEscape(in Input) (Input, string, error) {
	rest := in.Rest()
	if len(rest) < 2 {
		return in, "", expected(in.Advance(1), "escape character")
	}
	s, ok := namedEscapes[rest[1]]
	if !ok {
		return in, "", expected(in.Advance(1), "named escape")
	}
	return in.Advance(2), s, nil
}

// escapedLineTerminator is a line continuation and decodes to nothing.
func escapedLineTerminator(in Input) (Input, string, error) {
	for _, nl := range []string{"\\\n", "\\\r\n"} {
		if in.HasPrefix(nl) {
			return in.AdvanceString(nl), "", nil
		}
	}
	return in, "", expected(in.Advance(1), "line terminator")
}

// octalEscape reads one to three octal digits; the value is truncated to a
// byte.
func octalEscape(in Input) (Input, string, error) {
	return boundedNumberEscape(in, "\\", 3, 8, isOctDigit)
}

func hexEscape(in Input) (Input, string, error) {
	return boundedNumberEscape(in, "\\x", 2, 16, isHexDigit)
}

func boundedNumberEscape(in Input, prefix string, max, base int, isDigit func(rune) bool) (Input, string, error) {
	if !in.HasPrefix(prefix) {
		return in, "", expected(in, "'"+prefix+"'")
	}
	cur := in.AdvanceString(prefix)
	rest := cur.Rest()
	n := 0
	for n < max && n < len(rest) && isDigit(rune(rest[n])) {
		n++
	}
	if n == 0 {
		return in, "", expected(cur, "digit")
	}
	v, err := strconv.ParseUint(rest[:n], base, 32)
	if err != nil {
		return in, "", failf(cur, KindInvalidNumber, "invalid escape digits %q", rest[:n])
	}
	return cur.Advance(n), byteRune(byte(v)), nil
}

// unicodeEscape is \u followed by exactly four hex digits.
func unicodeEscape(in Input) (Input, string, error) {
	if !in.HasPrefix("\\u") {
		return in, "", expected(in, "'\\u'")
	}
	cur := in.Advance(2)
	out, s, err := hexQuad(cur)
	if err != nil {
		return in, "", err
	}
	return out, s, nil
}

func hexQuad(in Input) (Input, string, error) {
	rest := in.Rest()
	if len(rest) < 4 {
		return in, "", expected(in, "four hex digits")
	}
	for i := 0; i < 4; i++ {
		if !isHexDigit(rune(rest[i])) {
			return in, "", expected(in.Advance(i), "hex digit")
		}
	}
	v, _ := strconv.ParseUint(rest[:4], 16, 32)
	r := rune(v)
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return in.Advance(4), string(r), nil
}

// unicodeListEscape is \u{XXXX XXXX ...}: one or more groups of exactly four
// hex digits separated by spaces.
func unicodeListEscape(in Input) (Input, string, error) {
	if !in.HasPrefix("\\u{") {
		return in, "", expected(in, "'\\u{'")
	}
	cur := skipBlanks(in.Advance(3))

	var sb strings.Builder
	for {
		next, s, err := hexQuad(cur)
		if err != nil {
			return in, "", err
		}
		sb.WriteString(s)
		cur = next
		if r, _ := cur.Peek(); isHexDigit(r) {
			return in, "", expected(cur, "space or '}'")
		}

		spaced := skipBlanks(cur)
		if spaced.HasPrefix("}") {
			return spaced.Advance(1), sb.String(), nil
		}
		if spaced.Offset() == cur.Offset() {
			return in, "", expected(cur, "space or '}'")
		}
		cur = spaced
	}
}

func skipBlanks(in Input) Input {
	rest := in.Rest()
	n := 0
	for n < len(rest) && rest[n] == ' ' {
		n++
	}
	return in.Advance(n)
}

// controlMetaEscape handles \C-x, \cx and \M-x in any combination. The
// escaped character may itself be an escape sequence or '?'. Only the first
// byte of a multibyte character takes part.
func controlMetaEscape(in Input) (Input, byte, error) {
	switch {
	case in.HasPrefix("\\C-"):
		return controlOf(in, in.AdvanceString("\\C-"))
	case in.HasPrefix("\\c"):
		return controlOf(in, in.AdvanceString("\\c"))
	case in.HasPrefix("\\M-"):
		out, b, err := escapedByte(in.AdvanceString("\\M-"))
		if err != nil {
			return in, 0, err
		}
		return out, b | 0x80, nil
	}
	return in, 0, expected(in, "control or meta escape")
}

func controlOf(in, body Input) (Input, byte, error) {
	out, b, err := escapedByte(body)
	if err != nil {
		return in, 0, err
	}
	switch {
	case b == '?':
		return out, 0x7f, nil
	case b < 0x20:
		return out, b & 0x1f, nil
	default:
		return out, b & 0x9f, nil
	}
}

func escapedByte(in Input) (Input, byte, error) {
	if in.AtEOF() {
		return in, 0, expected(in, "escaped character")
	}
	if in.HasPrefix("\\C-") || in.HasPrefix("\\c") || in.HasPrefix("\\M-") {
		return controlMetaEscape(in)
	}
	if in.HasPrefix("\\") {
		out, s, err := escapeSequence(in)
		if err != nil {
			return in, 0, err
		}
		if s == "" {
			return in, 0, expected(in, "escaped character")
		}
		if r, _ := utf8.DecodeRuneInString(s); r < 0x100 {
			return out, byte(r), nil
		}
		return out, s[0], nil
	}
	_, size := in.Peek()
	return in.Advance(size), in.Rest()[0], nil
}

// plainEscape drops the backslash from any other escaped character.
func plainEscape(in Input) (Input, string, error) {
	cur := in.Advance(1)
	r, size := cur.Peek()
	if size == 0 {
		return in, "", expected(cur, "escaped character")
	}
	return cur.Advance(size), string(r), nil
}

// quotedEscape is the reduced escape set of single-quoted literals: only a
// backslash or one of the delimiters can be escaped. Any other pair is kept
// verbatim.
func quotedEscape(in Input, delimiters string) (Input, string, error) {
	if !in.HasPrefix("\\") {
		return in, "", expected(in, "escape sequence")
	}
	cur := in.Advance(1)
	r, size := cur.Peek()
	if size == 0 {
		return in, "", expected(cur, "escaped character")
	}
	if r == '\\' || strings.ContainsRune(delimiters, r) {
		return cur.Advance(size), string(r), nil
	}
	return cur.Advance(size), "\\" + string(r), nil
}

// DecodeEscape decodes a single escape sequence at the start of text and
// returns the decoded string and the number of bytes consumed.
func DecodeEscape(text string) (string, int, error) {
	in := NewInput("", text, 0)
	out, s, err := escapeSequence(in)
	if err != nil {
		return "", 0, err
	}
	return s, out.Offset(), nil
}
