// Package config loads settings for the pratt command from TOML or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/pratt/expr/parser"
	"github.com/dhamidi/pratt/format"
)

// EnvVar names the environment variable holding an explicit config path.
const EnvVar = "PRATT_CONFIG"

// Config holds the complete command configuration
type Config struct {
	Output OutputConfig `toml:"output" yaml:"output"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// OutputConfig controls how trees are printed
type OutputConfig struct {
	Format  string `toml:"format" yaml:"format"`
	NoColor bool   `toml:"no_color" yaml:"no_color"`
}

// ParserConfig selects the rule table and tracing
type ParserConfig struct {
	Grammar string `toml:"grammar" yaml:"grammar"`
	Trace   bool   `toml:"trace" yaml:"trace"`
}

// LogConfig holds commonlog settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Decode(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode parses content as "toml" or "yaml", applies defaults and validates.
func Decode(content []byte, kind string) (*Config, error) {
	var cfg Config
	switch kind {
	case "toml":
		md, err := toml.NewDecoder(bytes.NewReader(content)).Decode(&cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key: %s", undecoded[0])
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", kind)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads configuration from the PRATT_CONFIG environment
// variable or the first default location that exists. Without a file it
// returns the defaults.
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// SearchPaths lists the default config locations in lookup order.
func SearchPaths() []string {
	paths := []string{
		"./pratt.toml",
		"./.pratt.yaml",
		"./.pratt.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "pratt", "config.toml"),
			filepath.Join(home, ".config", "pratt", "config.yaml"),
		)
	}
	return paths
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "toml"
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}
	if c.Parser.Grammar == "" {
		c.Parser.Grammar = "default"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "pratt> "
	}
	if c.REPL.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.HistoryFile = filepath.Join(home, ".pratt_history")
		}
	}
}

func (c *Config) expandEnvVars() {
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks the values that name other components.
func (c *Config) Validate() error {
	if _, err := GrammarByName(c.Parser.Grammar); err != nil {
		return err
	}
	for _, name := range format.Names {
		if name == c.Output.Format {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (expected %s)", c.Output.Format, strings.Join(format.Names, ", "))
}

// ParserOptions returns the parser options this configuration selects.
func (c *Config) ParserOptions() []parser.Option {
	g, err := GrammarByName(c.Parser.Grammar)
	if err != nil {
		g = parser.DefaultGrammar()
	}
	opts := []parser.Option{parser.WithGrammar(g)}
	if c.Parser.Trace {
		opts = append(opts, parser.WithTrace())
	}
	return opts
}

// LogFile returns the log path for commonlog.Configure, nil for stderr.
func (c *Config) LogFile() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	return &path
}

// GrammarByName maps "default" and "extended" to the parser's rule tables.
func GrammarByName(name string) (*parser.Grammar, error) {
	switch name {
	case "default", "":
		return parser.DefaultGrammar(), nil
	case "extended":
		return parser.ExtendedGrammar(), nil
	}
	return nil, fmt.Errorf("unknown grammar %q (expected default or extended)", name)
}
