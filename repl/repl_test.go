package repl

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rubyfront/internal/parser"
)

func init() {
	color.NoColor = true
}

type scripted struct {
	lines   []string
	prompts []string
	history []string
}

func (s *scripted) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scripted) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func session(lines ...string) (*Session, *scripted, *bytes.Buffer) {
	in := &scripted{lines: lines}
	out := &bytes.Buffer{}
	return NewSession(in, out), in, out
}

func TestEvalPrintsEachStatement(t *testing.T) {
	s, in, out := session("a = 1; b = a + 2")
	require.NoError(t, s.Run())

	assert.Equal(t, "=> (= a 1)\n=> (= b (+ a 2))\n\n", out.String())
	assert.Equal(t, []string{"a = 1; b = a + 2"}, in.history)
}

func TestContinuationLines(t *testing.T) {
	s, in, out := session("x = [1,", "2]", "(1 +", "2)")
	require.NoError(t, s.Run())

	assert.Equal(t, []string{Prompt, ContinuePrompt, Prompt, ContinuePrompt, Prompt}, in.prompts)
	assert.Contains(t, out.String(), "=> (= x [1, 2])\n")
	assert.Contains(t, out.String(), "=> (paren (+ 1 2))\n")
	assert.Equal(t, []string{"x = [1, 2]", "(1 + 2)"}, in.history)
}

func TestHeredocContinues(t *testing.T) {
	s, _, out := session("s = <<EOS", "hello", "EOS")
	require.NoError(t, s.Run())
	assert.Contains(t, out.String(), `=> (= s "hello\n")`)
}

func TestErrorsAreRendered(t *testing.T) {
	s, in, out := session("1 2")
	require.NoError(t, s.Run())

	assert.Contains(t, out.String(), "error[E0100]")
	assert.Contains(t, out.String(), "--> (repl):1:3")
	assert.Len(t, in.prompts, 2, "a non-incomplete failure does not ask for more")
}

func TestCommands(t *testing.T) {
	s, in, out := session(":help", ":tokens", "1", ":sym", ":quit", "never read")
	require.NoError(t, s.Run())

	text := out.String()
	assert.Contains(t, text, ":tokens  toggle")
	assert.Contains(t, text, "token display on")
	assert.Contains(t, text, `1:1 Integer "1"`)
	assert.Contains(t, text, "=> :sym")
	assert.Len(t, in.lines, 1)
}

func TestBlankInputIsSkipped(t *testing.T) {
	s, in, out := session("", "   ")
	require.NoError(t, s.Run())
	assert.Equal(t, "\n", out.String())
	assert.Empty(t, in.history)
}

func TestDepthOptionIsApplied(t *testing.T) {
	in := &scripted{lines: []string{strings.Repeat("(", 10) + "1" + strings.Repeat(")", 10)}}
	out := &bytes.Buffer{}
	require.NoError(t, NewSession(in, out, parser.WithMaxDepth(4)).Run())
	assert.Contains(t, out.String(), "error[E0109]")
}
