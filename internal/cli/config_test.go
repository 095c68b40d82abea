package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/orizon-lang/kestrel/internal/parser"
	"github.com/orizon-lang/kestrel/internal/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.toml")} {
		cfg, err := LoadConfig(path, false)
		if err != nil {
			t.Fatalf("LoadConfig(%q) failed: %v", path, err)
		}
		if cfg.Parser.MaxDepth != parser.DefaultMaxDepth {
			t.Errorf("Expected max depth %d, got %d", parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
		}
		if cfg.Output.Format != report.FormatText || cfg.Output.Color != ColorAuto {
			t.Errorf("Unexpected output defaults %+v", cfg.Output)
		}
		if cfg.Watch.Debounce.Duration != 200*time.Millisecond {
			t.Errorf("Unexpected debounce %s", cfg.Watch.Debounce)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Defaults should validate: %v", err)
		}
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	_, err := LoadConfig(path, true)
	if err == nil {
		t.Fatal("Expected error for a missing explicit config file")
	}
	if !strings.Contains(err.Error(), "config file "+path+" not found") {
		t.Errorf("Unexpected error %q", err.Error())
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
verbose = true

[parser]
max_depth = 64

[output]
format = "yaml"
color = "never"

[language]
requires = ">= 1.0, < 2.0"

[watch]
debounce = "1s"
`)

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose")
	}
	if cfg.Parser.MaxDepth != 64 {
		t.Errorf("Expected max depth 64, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Output.Format != report.FormatYAML || cfg.Output.Color != ColorNever {
		t.Errorf("Unexpected output %+v", cfg.Output)
	}
	if cfg.Watch.Debounce.Duration != time.Second {
		t.Errorf("Expected 1s debounce, got %s", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"syntax error", "[parser\nmax_depth = 1", "failed to parse config file"},
		{"unknown key", "[parser]\nmax_dept = 3\n", `unknown key "parser.max_dept"`},
		{"bad duration", "[watch]\ndebounce = \"soon\"\n", "failed to parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), true)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected %q in %q", tt.message, err.Error())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, `invalid output format "xml"`},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, `invalid color mode "sometimes"`},
		{"bad depth", func(c *Config) { c.Parser.MaxDepth = -1 }, "max_depth must be positive"},
		{"bad constraint", func(c *Config) { c.Language.Requires = "not a version" }, "invalid language requirement"},
		{"unsatisfied constraint", func(c *Config) { c.Language.Requires = ">= 9.0" }, "does not satisfy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected %q in %q", tt.message, err.Error())
			}
		})
	}
}

func TestCheckGrammarVersion(t *testing.T) {
	accepted := []string{"", "  ", "^1.0", "~1.2", ">= 1.0, < 2.0", GrammarVersion}
	for _, c := range accepted {
		if err := CheckGrammarVersion(c); err != nil {
			t.Errorf("CheckGrammarVersion(%q) failed: %v", c, err)
		}
	}

	rejected := []string{"^2.0", "< 1.0", "~1.1"}
	for _, c := range rejected {
		if err := CheckGrammarVersion(c); err == nil {
			t.Errorf("CheckGrammarVersion(%q) should fail", c)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("KESTREL_FORMAT", "JSON")
	t.Setenv("KESTREL_COLOR", "always")
	t.Setenv("KESTREL_MAX_DEPTH", "32")
	t.Setenv("KESTREL_VERBOSE", "true")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Output.Format != report.FormatJSON {
		t.Errorf("Expected json, got %s", cfg.Output.Format)
	}
	if cfg.Output.Color != ColorAlways {
		t.Errorf("Expected always, got %s", cfg.Output.Color)
	}
	if cfg.Parser.MaxDepth != 32 {
		t.Errorf("Expected 32, got %d", cfg.Parser.MaxDepth)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose")
	}
	if cfg.Debug {
		t.Error("Debug should stay off")
	}
}

func TestConfigWriteRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = report.FormatJSON
	cfg.Language.Requires = "^1.0"

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := LoadConfig(writeConfig(t, buf.String()), true)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v\n%s", err, buf.String())
	}
	if *loaded != *cfg {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}

func TestApplyEnvRejectsBadDepth(t *testing.T) {
	for _, value := range []string{"deep", "1.5", "12abc"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("KESTREL_MAX_DEPTH", value)

			cfg := DefaultConfig()
			err := cfg.ApplyEnv()
			if err == nil {
				t.Fatalf("Expected error for KESTREL_MAX_DEPTH=%q", value)
			}
			if !strings.Contains(err.Error(), "KESTREL_MAX_DEPTH must be an integer") {
				t.Errorf("Unexpected error %q", err.Error())
			}
			if cfg.Parser.MaxDepth != parser.DefaultMaxDepth {
				t.Errorf("Max depth changed to %d", cfg.Parser.MaxDepth)
			}
		})
	}
}
