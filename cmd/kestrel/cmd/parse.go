package cmd

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/kestrel/internal/report"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE...",
		Short: "Print the syntax tree of Kestrel files",
		Long: `Parse each file and print its syntax tree followed by any diagnostics.

With --format json or yaml every file is written as a document holding the
tree, the diagnostics and node statistics.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFiles(cmd, args, (*report.Renderer).AST, len(args) > 1)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax errors in Kestrel files",
		Long:  `Parse each file and print diagnostics only. The exit status is 1 when any file has errors.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFiles(cmd, args, (*report.Renderer).Check, true)
		},
	}
}

// runFiles reads every argument, parses the sources concurrently and renders
// the results in argument order
func (a *app) runFiles(cmd *cobra.Command, args []string, render func(*report.Renderer, *report.Result) error, summary bool) error {
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}

	files := make([]string, len(args))
	sources := make([]string, len(args))
	for i, name := range args {
		if files[i], sources[i], err = readSource(cmd, name); err != nil {
			return err
		}
	}

	results, err := a.parseAll(cmd.Context(), files, sources)
	if err != nil {
		return err
	}

	failed := false
	for _, res := range results {
		if err := render(r, res); err != nil {
			return err
		}
		failed = failed || !res.OK()
	}
	if summary {
		if err := r.Summary(results); err != nil {
			return err
		}
	}

	if failed {
		return errDiagnostics
	}
	return nil
}

func (a *app) parseAll(ctx context.Context, files, sources []string) ([]*report.Result, error) {
	results := make([]*report.Result, len(files))
	opts := a.cfg.ParserOptions()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range files {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a.logger.Info("parsing %s (%d bytes)", files[i], len(sources[i]))
			res := report.Parse(files[i], sources[i], a.logger.RunID, opts...)
			a.logger.Debug("%s: %d tokens, %d diagnostics", files[i], res.Tokens, len(res.Errors))
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
