// Package config loads rubyfront settings from TOML or YAML files with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"rubyfront/internal/parser"
)

// EnvPrefix prefixes every environment override, e.g. RUBYFRONT_MAX_DEPTH.
const EnvPrefix = "RUBYFRONT"

// FileNames are the configuration files Discover looks for, in order.
var FileNames = []string{".rubyfront.toml", ".rubyfront.yaml", ".rubyfront.yml"}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

type Config struct {
	MaxDepth     int    `toml:"max_depth" yaml:"max_depth"`
	Color        bool   `toml:"color" yaml:"color"`
	ShowTrailing bool   `toml:"show_trailing" yaml:"show_trailing"`
	LogVerbosity int    `toml:"log_verbosity" yaml:"log_verbosity"`
	LogFile      string `toml:"log_file" yaml:"log_file"`

	path string
}

func Default() *Config {
	return &Config{
		MaxDepth: parser.DefaultMaxDepth,
		Color:    true,
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := LoadFromString(string(data), DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// LoadFromString parses content in the given format over the defaults.
func LoadFromString(content string, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(content, cfg)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown setting %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(strings.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DetectFormat picks the format from the file extension, defaulting to TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Discover loads the first of FileNames found in dir. Without one it returns
// the defaults with environment overrides applied.
func Discover(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from RUBYFRONT_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envKey("max_depth")); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envKey("max_depth"), err)
		}
		c.MaxDepth = n
	}
	for key, field := range map[string]*bool{"color": &c.Color, "show_trailing": &c.ShowTrailing} {
		if v, ok := lookup(envKey(key)); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", envKey(key), err)
			}
			*field = b
		}
	}
	if v, ok := lookup(envKey("log_verbosity")); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envKey("log_verbosity"), err)
		}
		c.LogVerbosity = n
	}
	if v, ok := lookup(envKey("log_file")); ok {
		c.LogFile = v
	}
	return nil
}

func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.LogVerbosity < 0 || c.LogVerbosity > 2 {
		return fmt.Errorf("log_verbosity must be between 0 and 2, got %d", c.LogVerbosity)
	}
	return nil
}

// Path is the file the configuration came from, or "" for defaults.
func (c *Config) Path() string { return c.path }

// ParserOptions translates the settings the parser understands.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(c.MaxDepth)}
}
