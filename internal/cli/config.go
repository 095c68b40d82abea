package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/xyproto/env/v2"

	"github.com/orizon-lang/kestrel/internal/parser"
	"github.com/orizon-lang/kestrel/internal/report"
)

// DefaultConfigFile is looked up in the working directory when --config is not given
const DefaultConfigFile = "kestrel.toml"

// Colour modes. Output formats are the report.Format* constants.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds the kestrel tool configuration
type Config struct {
	Verbose  bool           `toml:"verbose"`
	Debug    bool           `toml:"debug"`
	Parser   ParserConfig   `toml:"parser"`
	Output   OutputConfig   `toml:"output"`
	Language LanguageConfig `toml:"language"`
	Watch    WatchConfig    `toml:"watch"`
}

// ParserConfig holds parser limits
type ParserConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// OutputConfig selects how results are rendered
type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// LanguageConfig pins the grammar a project is written against
type LanguageConfig struct {
	Requires string `toml:"requires"`
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from a TOML file; unknown keys are rejected.
// When explicit is false the path is only a default location and a missing
// file yields the defaults.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, os.ErrNotExist) && explicit:
			return nil, fmt.Errorf("config file %s not found", path)
		case errors.Is(err, os.ErrNotExist):
			cfg = &Config{}
		case err != nil:
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
			}
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overrides settings from KESTREL_* environment variables
func (c *Config) ApplyEnv() error {
	if env.Has("KESTREL_FORMAT") {
		c.Output.Format = strings.ToLower(env.Str("KESTREL_FORMAT"))
	}
	if env.Has("KESTREL_COLOR") {
		c.Output.Color = strings.ToLower(env.Str("KESTREL_COLOR"))
	}
	if env.Has("KESTREL_MAX_DEPTH") {
		raw := env.Str("KESTREL_MAX_DEPTH")
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("KESTREL_MAX_DEPTH must be an integer, got %q", raw)
		}
		c.Parser.MaxDepth = n
	}
	if env.Has("KESTREL_VERBOSE") {
		c.Verbose = env.Bool("KESTREL_VERBOSE")
	}
	if env.Has("KESTREL_DEBUG") {
		c.Debug = env.Bool("KESTREL_DEBUG")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = report.FormatText
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
}

// Validate checks option values and the grammar requirement
func (c *Config) Validate() error {
	switch c.Output.Format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("invalid output format %q (want text, json or yaml)", c.Output.Format)
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Output.Color)
	}

	if c.Parser.MaxDepth < 1 {
		return fmt.Errorf("parser max_depth must be positive, got %d", c.Parser.MaxDepth)
	}
	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %s", c.Watch.Debounce)
	}

	return CheckGrammarVersion(c.Language.Requires)
}

// ParserOptions returns the parser options selected by the configuration
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(c.Parser.MaxDepth)}
}

// Write encodes the configuration as TOML
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// CheckGrammarVersion reports an error when the built-in grammar version does
// not satisfy constraint. An empty constraint accepts any grammar.
func CheckGrammarVersion(constraint string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid language requirement %q: %w", constraint, err)
	}

	v := semver.MustParse(GrammarVersion)
	if ok, errs := c.Validate(v); !ok {
		return fmt.Errorf("grammar %s does not satisfy %q: %w", GrammarVersion, constraint, errors.Join(errs...))
	}

	return nil
}
