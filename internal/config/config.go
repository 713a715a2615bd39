// Package config loads nodelang settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"nodelang/internal/parser"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "NODELANG_CONFIG"

// Format is the syntax of a config file.
type Format int

const (
	// FormatTOML is the default format.
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

// DetectFormat picks the format from the file extension. Anything that is
// not .yaml or .yml is read as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Output formats for the parse command.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputTree = "tree"
)

// Config holds the complete toolchain configuration
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Output OutputConfig `toml:"output" yaml:"output"`

	path string
}

// ParserConfig holds the grammar switches
type ParserConfig struct {
	// WalrusColon scans ":=" as a walrus token. When false it is scanned as
	// a plain ':'.
	WalrusColon bool `toml:"walrus_colon" yaml:"walrus_colon"`
	// LegacyOctal accepts 017-style octal literals without a diagnostic.
	LegacyOctal bool `toml:"legacy_octal" yaml:"legacy_octal"`
}

// OutputConfig holds rendering settings for the CLI
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
	Indent int    `toml:"indent" yaml:"indent"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{
		Parser: ParserConfig{WalrusColon: true, LegacyOctal: true},
		Output: OutputConfig{Color: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes configuration content in the given format.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover finds the configuration to use. An explicit path wins, then the
// NODELANG_CONFIG environment variable, then the default locations. When
// nothing is found the defaults are returned.
func Discover(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{
		"./nodelang.toml",
		"./nodelang.yaml",
		"./nodelang.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "nodelang", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = OutputJSON
	}
	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.Indent == 0 {
		c.Output.Indent = 4
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case OutputJSON, OutputYAML, OutputTree:
	default:
		return fmt.Errorf("output.format must be json, yaml or tree, got %q", c.Output.Format)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return fmt.Errorf("output.indent must be between 1 and 16, got %d", c.Output.Indent)
	}
	return nil
}

// ParserOptions maps the parser section onto parser.Options.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		LegacyColon:   !c.Parser.WalrusColon,
		NoLegacyOctal: !c.Parser.LegacyOctal,
	}
}

// Path returns the file the configuration was loaded from, or "" for the
// defaults.
func (c *Config) Path() string {
	return c.path
}
