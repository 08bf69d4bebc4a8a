package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rubyfront/internal/parser"
)

func noEnv(string) (string, bool) { return "", false }

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
	assert.True(t, cfg.Color)
	assert.False(t, cfg.ShowTrailing)
	assert.NoError(t, cfg.Validate())
	assert.Len(t, cfg.ParserOptions(), 1)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubyfront.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_depth = 64
show_trailing = true
log_file = "/tmp/rubyfront.log"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.True(t, cfg.ShowTrailing)
	assert.True(t, cfg.Color, "unset keys keep their defaults")
	assert.Equal(t, "/tmp/rubyfront.log", cfg.LogFile)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubyfront.yml")
	require.NoError(t, os.WriteFile(path, []byte("color: false\nlog_verbosity: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Color)
	assert.Equal(t, 2, cfg.LogVerbosity)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := LoadFromString("", FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
	}{
		{"bad toml", "max_depth = ", FormatTOML},
		{"unknown toml key", "depth = 3", FormatTOML},
		{"bad yaml", "max_depth: [1", FormatYAML},
		{"unknown yaml key", "depth: 3", FormatYAML},
		{"invalid depth", "max_depth = 0", FormatTOML},
		{"invalid verbosity", "log_verbosity: 9", FormatYAML},
		{"unsupported format", "", Format(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromString(tt.content, tt.format)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"RUBYFRONT_MAX_DEPTH":     "100",
		"RUBYFRONT_COLOR":         "false",
		"RUBYFRONT_SHOW_TRAILING": "1",
		"RUBYFRONT_LOG_FILE":      "out.log",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, 100, cfg.MaxDepth)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.ShowTrailing)
	assert.Equal(t, "out.log", cfg.LogFile)

	cfg = Default()
	require.NoError(t, cfg.ApplyEnv(noEnv))
	assert.Equal(t, Default(), cfg)

	env = map[string]string{"RUBYFRONT_MAX_DEPTH": "deep"}
	assert.Error(t, Default().ApplyEnv(lookup))
	env = map[string]string{"RUBYFRONT_COLOR": "maybe"}
	assert.Error(t, Default().ApplyEnv(lookup))
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("RUBYFRONT_MAX_DEPTH", "32")
	cfg, err := LoadFromString("max_depth = 64", FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.MaxDepth)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())

	path := filepath.Join(dir, ".rubyfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 10\n"), 0o644))
	cfg, err = Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxDepth)
	assert.Equal(t, path, cfg.Path())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("a.YML"))
	assert.Equal(t, FormatYAML, DetectFormat("a.yaml"))
	assert.Equal(t, FormatTOML, DetectFormat("a.toml"))
	assert.Equal(t, FormatTOML, DetectFormat("config"))
	assert.Equal(t, "yaml", FormatYAML.String())
}
