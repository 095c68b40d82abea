package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/kestrel/internal/cli"
	"github.com/orizon-lang/kestrel/internal/report"
	"github.com/orizon-lang/kestrel/internal/term"
)

// errDiagnostics makes the process exit with status 1 after diagnostics
// have already been printed
var errDiagnostics = fmt.Errorf("parse diagnostics: %w", cli.ErrReported)

// app carries the flag values and the resolved configuration shared by all commands
type app struct {
	cfgFile  string
	verbose  bool
	debug    bool
	format   string
	color    string
	maxDepth int

	cfg    *cli.Config
	logger *cli.Logger
}

// NewRootCommand builds the kestrel command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "kestrel",
		Short: "Kestrel language front end",
		Long: `kestrel parses Kestrel source files (.kes) and reports syntax errors.

Commands:
  parse    - print the syntax tree of one or more files
  check    - report diagnostics only
  tokens   - print the token stream of a file
  watch    - reparse files whenever they change
  config   - print the effective configuration
  version  - print version information

A file argument of "-" reads from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./"+cli.DefaultConfigFile+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&a.debug, "debug", false, "debug output")
	flags.StringVarP(&a.format, "format", "f", "", "output format: text, json or yaml")
	flags.StringVar(&a.color, "color", "", "colour mode: auto, always or never")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "maximum nesting depth")

	root.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newTokensCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command. Diagnostics reports come back wrapping
// cli.ErrReported.
func Execute() error {
	return NewRootCommand().Execute()
}

// setup resolves configuration: file, then environment, then flags
func (a *app) setup(cmd *cobra.Command) error {
	path := a.cfgFile
	if path == "" {
		path = cli.DefaultConfigFile
	}

	cfg, err := cli.LoadConfig(path, a.cfgFile != "")
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = a.color
	}
	if flags.Changed("max-depth") {
		cfg.Parser.MaxDepth = a.maxDepth
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = cli.NewLogger(cfg.Verbose, cfg.Debug)
	a.logger.Out = cmd.ErrOrStderr()
	a.logger.Debug("configuration resolved from %s", path)
	return nil
}

func (a *app) renderer(cmd *cobra.Command) (*report.Renderer, error) {
	out := cmd.OutOrStdout()
	return report.NewRenderer(out, a.cfg.Output.Format, a.colorFor(out))
}

func (a *app) colorFor(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.ColorEnabled(a.cfg.Output.Color, f)
	}
	return a.cfg.Output.Color == cli.ColorAlways
}

// readSource reads a named file, or standard input for "-"
func readSource(cmd *cobra.Command, name string) (string, string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return name, string(data), nil
}
