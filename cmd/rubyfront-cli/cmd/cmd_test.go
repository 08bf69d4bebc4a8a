package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, "a.rb", "x = 1 + 2\n__END__\ndata\n")

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(program (= x (+ 1 2)))\n")
	assert.NotContains(t, out, "__END__")
	assert.Contains(t, out, "Successfully parsed "+path)

	out, err = run(t, "", "parse", "--trailing", path)
	require.NoError(t, err)
	assert.Contains(t, out, "__END__ \"data\\n\"\n")
}

func TestParseStdin(t *testing.T) {
	out, err := run(t, "[1, :a]", "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "(program [1, :a])")
	assert.Contains(t, out, "(stdin)")
}

func TestParseFailureIsRendered(t *testing.T) {
	path := writeFile(t, "bad.rb", "x = (1 +\n")

	out, err := run(t, "", "parse", path)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "error[E0101]")
	assert.Contains(t, out, path+":2:1")
	assert.Contains(t, out, "Parsing failed after")
}

func TestParseMagicWarnings(t *testing.T) {
	path := writeFile(t, "magic.rb", "# frozen_string_literal: nope\n1\n")

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning[W0100]")
	assert.Contains(t, out, "1 warning generated")
}

func TestParseMissingFile(t *testing.T) {
	_, err := run(t, "", "parse", filepath.Join(t.TempDir(), "none.rb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestConfigDepthApplies(t *testing.T) {
	cfg := writeFile(t, "cfg.toml", "max_depth = 2\n")
	path := writeFile(t, "deep.rb", "(((1)))\n")

	out, err := run(t, "", "--config", cfg, "parse", path)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "error[E0109]")

	_, err = run(t, "", "--config", writeFile(t, "bad.yaml", "max_depth: nope\n"), "version")
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	out, err := run(t, "a = :b # c", "tokens", "-")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		`1:1 Ident "a"`,
		`1:3 Operator "="`,
		`1:5 Symbol ":b"`,
		`1:8 Comment "# c"`,
		"",
	}, "\n"), out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rubyfront v"+Version)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", formatDuration(500))
	assert.Equal(t, "1.5ms", formatDuration(1500000))
}
