package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rubyfront/internal/ast"
)

func TestIdentifierKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.IdentKind
	}{
		{"foo", ast.LocalVar},
		{"_foo", ast.LocalVar},
		{"éte", ast.LocalVar},
		{"Foo", ast.Constant},
		{"FOO_BAR", ast.Constant},
		{"foo?", ast.MethodName},
		{"save!", ast.MethodName},
		{"name=", ast.AssignMethodName},
		{"@foo", ast.InstanceVar},
		{"@@foo", ast.ClassVar},
		{"$foo", ast.GlobalVar},
		{"$-w", ast.GlobalVar},
		{"$1", ast.GlobalVar},
		{"$~", ast.GlobalVar},
		{"$0", ast.GlobalVar},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			id := run(t, Identifier, tt.src)
			assert.Equal(t, tt.kind, id.Kind)
			assert.Equal(t, tt.src, id.Name)
		})
	}
}

func TestIdentifierStopsBeforeOperators(t *testing.T) {
	tests := []struct {
		src  string
		name string
		rest string
	}{
		{"a!=b", "a", "!=b"},
		{"a?==b", "a", "?==b"},
		{"a==b", "a", "==b"},
		{"a=~b", "a", "=~b"},
		{"a=>b", "a", "=>b"},
		{"a.b", "a", ".b"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			out, id, err := Identifier(NewInput("", tt.src, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.name, id.Name)
			assert.Equal(t, tt.rest, out.Rest())
		})
	}
}

func TestKeywordExclusion(t *testing.T) {
	for _, kw := range []string{"nil", "true", "false", "if", "BEGIN", "END", "defined?", "__FILE__", "self"} {
		t.Run(kw, func(t *testing.T) {
			_, _, err := Identifier(NewInput("", kw, 0))
			require.Error(t, err)
			assert.Equal(t, KindKeyword, err.(*ParseError).Kind)
		})
	}

	for _, name := range []string{"truely", "nil_", "iffy", "ENDING", "nil?", "self!", "classy"} {
		t.Run(name, func(t *testing.T) {
			id := run(t, Identifier, name)
			assert.Equal(t, name, id.Name)
		})
	}
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range Keywords {
		assert.True(t, IsKeyword(kw), kw)
	}
	for _, name := range []string{"", "truely", "de", "defined", "End", "nil?"} {
		assert.False(t, IsKeyword(name), name)
	}
}

func TestKeywordLongestMatch(t *testing.T) {
	out, kw, err := keyword(NewInput("", "defined?(x)", 0))
	require.NoError(t, err)
	assert.Equal(t, "defined?", kw)
	assert.Equal(t, "(x)", out.Rest())

	_, kw, err = keyword(NewInput("", "ensure", 0))
	require.NoError(t, err)
	assert.Equal(t, "ensure", kw)
}

func TestSigilVariableErrors(t *testing.T) {
	for _, src := range []string{"@", "@1a", "@@", "$", "$-"} {
		_, _, err := Identifier(NewInput("", src, 0))
		assert.Error(t, err, "%q", src)
	}
}
