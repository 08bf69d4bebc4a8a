package parser

import (
	"strings"
	"unicode/utf8"
)

// Parser consumes a prefix of its input. On success it returns the remaining
// input and a value; on failure it returns its input unchanged and a
// *ParseError.
type Parser[T any] func(Input) (Input, T, error)

// alt is ordered choice: the first alternative to succeed wins. A committed
// failure ends the choice immediately; otherwise the failure that got
// furthest is reported.
func alt[T any](ps ...Parser[T]) Parser[T] {
	return func(in Input) (Input, T, error) {
		var zero T
		var best *ParseError
		for _, p := range ps {
			out, v, err := p(in)
			if err == nil {
				return out, v, nil
			}
			pe, ok := err.(*ParseError)
			if !ok || pe.committed {
				return in, zero, err
			}
			if preferred(pe, best) {
				best = pe
			}
		}
		if best == nil {
			return in, zero, expected(in, "input")
		}
		return in, zero, best
	}
}

// preferred reports whether candidate is a better failure to report than
// best: it got further, or it got as far and says more than a plain
// mismatch.
func preferred(candidate, best *ParseError) bool {
	if best == nil || candidate.Position.Offset > best.Position.Offset {
		return true
	}
	return candidate.Position.Offset == best.Position.Offset && best.generic() && !candidate.generic()
}

// opt turns a soft failure into success with the zero value. The bool is
// true when p matched.
func opt[T any](p Parser[T]) func(Input) (Input, T, bool, error) {
	return func(in Input) (Input, T, bool, error) {
		out, v, err := p(in)
		if err == nil {
			return out, v, true, nil
		}
		if isCommitted(err) {
			return in, v, false, err
		}
		var zero T
		return in, zero, false, nil
	}
}

// many0 applies p until it fails softly or stops consuming input.
func many0[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) (Input, []T, error) {
		var out []T
		cur := in
		for {
			next, v, err := p(cur)
			if err != nil {
				if isCommitted(err) {
					return in, nil, err
				}
				return cur, out, nil
			}
			if next.Offset() == cur.Offset() {
				return cur, out, nil
			}
			out = append(out, v)
			cur = next
		}
	}
}

func many1[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) (Input, []T, error) {
		first, v, err := p(in)
		if err != nil {
			return in, nil, err
		}
		rest, vs, err := many0(p)(first)
		if err != nil {
			return in, nil, err
		}
		return rest, append([]T{v}, vs...), nil
	}
}

func mapP[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Input) (Input, B, error) {
		out, v, err := p(in)
		if err != nil {
			var zero B
			return in, zero, err
		}
		return out, f(v), nil
	}
}

func preceded[A, B any](first Parser[A], second Parser[B]) Parser[B] {
	return func(in Input) (Input, B, error) {
		var zero B
		mid, _, err := first(in)
		if err != nil {
			return in, zero, err
		}
		out, v, err := second(mid)
		if err != nil {
			return in, zero, err
		}
		return out, v, nil
	}
}

func terminated[A, B any](first Parser[A], second Parser[B]) Parser[A] {
	return func(in Input) (Input, A, error) {
		var zero A
		mid, v, err := first(in)
		if err != nil {
			return in, zero, err
		}
		out, _, err := second(mid)
		if err != nil {
			return in, zero, err
		}
		return out, v, nil
	}
}

func delimited[A, B, C any](open Parser[A], body Parser[B], closing Parser[C]) Parser[B] {
	return terminated(preceded(open, body), closing)
}

// recognize returns the source text p consumed instead of p's value.
func recognize[T any](p Parser[T]) Parser[string] {
	return func(in Input) (Input, string, error) {
		out, _, err := p(in)
		if err != nil {
			return in, "", err
		}
		return out, in.Consumed(out), nil
	}
}

// tag matches a literal string.
func tag(s string) Parser[string] {
	return func(in Input) (Input, string, error) {
		if !in.HasPrefix(s) {
			return in, "", expected(in, "'"+s+"'")
		}
		return in.AdvanceString(s), s, nil
	}
}

// char matches a single rune.
func char(r rune) Parser[rune] {
	return func(in Input) (Input, rune, error) {
		c, size := in.Peek()
		if size == 0 || c != r {
			return in, 0, expected(in, "'"+string(r)+"'")
		}
		return in.Advance(size), c, nil
	}
}

// satisfy matches one rune accepted by pred.
func satisfy(what string, pred func(rune) bool) Parser[rune] {
	return func(in Input) (Input, rune, error) {
		c, size := in.Peek()
		if size == 0 || !pred(c) {
			return in, 0, expected(in, what)
		}
		return in.Advance(size), c, nil
	}
}

// takeWhile1 consumes the longest non-empty run of runes accepted by pred.
func takeWhile1(what string, pred func(rune) bool) Parser[string] {
	return func(in Input) (Input, string, error) {
		rest := in.Rest()
		n := 0
		for n < len(rest) {
			r, size := utf8.DecodeRuneInString(rest[n:])
			if !pred(r) {
				break
			}
			n += size
		}
		if n == 0 {
			return in, "", expected(in, what)
		}
		return in.Advance(n), rest[:n], nil
	}
}

// word matches kw only when it is not followed by an identifier character,
// so "and" does not match the start of "android".
func word(kw string) Parser[string] {
	return func(in Input) (Input, string, error) {
		if !in.HasPrefix(kw) || !wordBoundary(in.Rest()[len(kw):]) {
			return in, "", expected(in, "'"+kw+"'")
		}
		return in.AdvanceString(kw), kw, nil
	}
}

func wordBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, size := utf8.DecodeRuneInString(rest)
	if isIdentChar(r) {
		return false
	}
	// nil? and self! are method names, not keywords followed by operators
	if (r == '?' || r == '!') && !strings.HasPrefix(rest[size:], "=") {
		return false
	}
	return true
}

// operator matches op unless it is immediately followed by one of the
// runes in notBefore, which would make it a different, longer operator.
func operator(op, notBefore string) Parser[string] {
	return func(in Input) (Input, string, error) {
		if !in.HasPrefix(op) {
			return in, "", expected(in, "'"+op+"'")
		}
		after := in.Rest()[len(op):]
		if after != "" && notBefore != "" {
			r, _ := utf8.DecodeRuneInString(after)
			if strings.ContainsRune(notBefore, r) {
				return in, "", expected(in, "'"+op+"'")
			}
		}
		return in.AdvanceString(op), op, nil
	}
}
