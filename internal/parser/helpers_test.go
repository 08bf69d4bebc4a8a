package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sexp parses src as one statement and returns its printed form.
func sexp(t *testing.T, src string) string {
	t.Helper()
	e, err := ParseExpression(src)
	require.NoError(t, err, src)
	return e.String()
}

// program parses src as a program and returns its printed form.
func program(t *testing.T, src string) string {
	t.Helper()
	res, err := Parse("test.rb", src)
	require.NoError(t, err, src)
	return res.Program.String()
}

// parseFailure parses src as a program and returns the error.
func parseFailure(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := Parse("test.rb", src)
	require.Error(t, err, src)
	pe, ok := err.(*ParseError)
	require.True(t, ok, "expected *ParseError, got %T", err)
	return pe
}

// run applies p to src and requires it to consume everything.
func run[T any](t *testing.T, p Parser[T], src string) T {
	t.Helper()
	out, v, err := p(NewInput("test.rb", src, 0))
	require.NoError(t, err, src)
	require.True(t, out.AtEOF(), "%q left %q unconsumed", src, out.Rest())
	return v
}
