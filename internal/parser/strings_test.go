package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rubyfront/internal/ast"
)

func TestFoldWithoutExpressionsConcatenates(t *testing.T) {
	segs := []segment{
		{kind: segChar, text: "a"},
		{kind: segText, text: "\n"},
		{kind: segChar, text: "b"},
		{kind: segText, text: ""},
	}
	iv := fold(segs)
	assert.False(t, iv.interpolated)
	assert.Equal(t, "a\nb", iv.text)
	assert.Empty(t, iv.parts)

	assert.Equal(t, iv, fold(segs), "folding is deterministic")
}

func TestFoldAroundOneExpression(t *testing.T) {
	e := &ast.Ident{Kind: ast.LocalVar, Name: "x"}
	iv := fold([]segment{
		{kind: segChar, text: "a"},
		{kind: segChar, text: "b"},
		{kind: segExpr, expr: e},
		{kind: segText, text: "c"},
	})
	require.True(t, iv.interpolated)
	require.Len(t, iv.parts, 3)
	assert.Equal(t, `"ab"`, iv.parts[0].String())
	assert.Same(t, e, iv.parts[1])
	assert.Equal(t, `"c"`, iv.parts[2].String())
}

func TestFoldDropsEmptyText(t *testing.T) {
	e := &ast.Ident{Kind: ast.LocalVar, Name: "x"}
	iv := fold([]segment{{kind: segText, text: ""}, {kind: segExpr, expr: e}})
	require.True(t, iv.interpolated)
	assert.Equal(t, []ast.Expr{e}, iv.parts)
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{`"abc"`, `"abc"`},
		{`"a\tb"`, `"a\tb"`},
		{`"\u{41}"`, `"u{41}"`},
		{`"\u{00410}"`, `"u{00410}"`},
		{`"a#{b}c"`, `(dstr "a" b "c")`},
		{`"#{}"`, `""`},
		{`"#{1; 2}"`, `(dstr (begin 1 2))`},
		{`"#@x y"`, `(dstr @x " y")`},
		{`"#@@x#$y"`, `(dstr @@x $y)`},
		{`"a#b"`, `"a#b"`},
		{`"#{"#{1}"}"`, `(dstr (dstr 1))`},
		{`'a\'b\\c\d'`, `"a'b\\c\\d"`},
		{`'#{x}'`, `"#{x}"`},
		{`"a" 'b'`, `"ab"`},
		{`"a" "#{b}" "c"`, `(dstr "a" b "c")`},
		{"`ls`", `(xstr "ls")`},
		{"`ls #{dir}`", `(dxstr "ls " dir)`},
		{`%q((a)(b))`, `"(a)(b)"`},
		{`%q((abc\)))`, `"(abc))"`},
		{`%q[a\]b]`, `"a]b"`},
		{`%q|a\|b|`, `"a|b"`},
		{`%Q{x#{1}}`, `(dstr "x" 1)`},
		{`%(a\n)`, `"a\n"`},
		{`%x(ls)`, `(xstr "ls")`},
		{`%s(sym)`, `:sym`},
		{`%q(a(%q<b>)c)`, `"a(%q<b>)c"`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, sexp(t, tt.src))
		})
	}
}

func TestPercentLiteralRestoresQuote(t *testing.T) {
	out, _, err := percentLiteral(NewInput("", "%q(a)", 0))
	require.NoError(t, err)
	assert.Zero(t, out.Meta().Quote)
}

func TestLiteralBeginningDelimiter(t *testing.T) {
	out, r, err := literalBeginningDelimiter(NewInput("", "<x", 0))
	require.NoError(t, err)
	assert.Equal(t, '<', r)
	assert.Equal(t, '<', out.Meta().Quote)
	assert.Equal(t, '>', literalEndingDelimiter(r))

	_, _, err = literalBeginningDelimiter(NewInput("", "a", 0))
	assert.Error(t, err)

	in := NewInput("", "[", 0)
	st := in.Meta()
	st.Quote = '('
	_, _, err = literalBeginningDelimiter(in.WithMeta(st))
	assert.Error(t, err, "only the recorded delimiter matches")
}

func TestWordArrays(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{`%w(a b  c)`, `["a", "b", "c"]`},
		{`%w()`, `[]`},
		{"%w[\n  a\n  b\n]", `["a", "b"]`},
		{`%w(a\ b c)`, `["a b", "c"]`},
		{`%w((a) b)`, `["(a)", "b"]`},
		{`%W(a#{1} b)`, `[(dstr "a" 1), "b"]`},
		{`%i[a b]`, `[:a, :b]`},
		{`%I[a#{1}]`, `[(dsym "a" 1)]`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, sexp(t, tt.src))
		})
	}
}

func TestSymbols(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{`:foo`, `:foo`},
		{`:foo?`, `:foo?`},
		{`:foo=`, `:foo=`},
		{`:Foo`, `:Foo`},
		{`:@a`, `:@a`},
		{`:@@a`, `:@@a`},
		{`:$a`, `:$a`},
		{`:if`, `:if`},
		{`:nil`, `:nil`},
		{`:+`, `:+`},
		{`:[]=`, `:[]=`},
		{`:<=>`, `:<=>`},
		{`:"a b"`, `:a b`},
		{`:"a#{1}"`, `(dsym "a" 1)`},
		{`:'a#{1}'`, `:a#{1}`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, sexp(t, tt.src))
		})
	}
}

func TestSymbolRejectsSpace(t *testing.T) {
	_, _, err := symbol(NewInput("", ": a", 0))
	require.Error(t, err)
	assert.Equal(t, KindSpace, err.(*ParseError).Kind)
}

func TestCharacterLiterals(t *testing.T) {
	assert.Equal(t, `"a"`, sexp(t, "?a"))
	assert.Equal(t, `"\n"`, sexp(t, `?\n`))
	assert.Equal(t, `"\x01"`, sexp(t, `?\C-a`))
	assert.Equal(t, `"?"`, sexp(t, "??"))

	_, _, err := characterLiteral(NewInput("", "? ", 0))
	require.Error(t, err)
	assert.Equal(t, KindSpace, err.(*ParseError).Kind)

	_, _, err = characterLiteral(NewInput("", "?\n", 0))
	require.Error(t, err)
	assert.Equal(t, KindLineTerminator, err.(*ParseError).Kind)

	_, _, err = characterLiteral(NewInput("", "?ab", 0))
	assert.Error(t, err)
}

func TestRegexpLiterals(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{`/abc/`, `(regexp "abc")`},
		{`//`, `(regexp)`},
		{`/a\/b/i`, `(regexp "a/b" /i)`},
		{`/\d+/mx`, `(regexp "\\d+" /mx)`},
		{`/a#{b}c/`, `(regexp "a" b "c")`},
		{`%r{a{1}}x`, `(regexp "a{1}" /x)`},
		{`%r!a\!b!`, `(regexp "a!b")`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, sexp(t, tt.src))
		})
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	for _, src := range []string{`"abc`, `'abc`, "`ls", `%q(a`, `%w(a b`, `/abc`, `:"abc`, `"#{1`} {
		t.Run(src, func(t *testing.T) {
			pe := parseFailure(t, src)
			assert.True(t, pe.Incomplete(), "%s: %s", src, pe)
		})
	}
}
