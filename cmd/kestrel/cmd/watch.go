package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/kestrel/internal/report"
	"github.com/orizon-lang/kestrel/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var poll time.Duration

	cmd := &cobra.Command{
		Use:   "watch [DIR...]",
		Short: "Reparse Kestrel files whenever they change",
		Long: `Watch directories (default: the current one) and check every .kes file
that is created or written. Changes are batched using the [watch] debounce
setting. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, cmd, args, poll)
		},
	}
	cmd.Flags().DurationVar(&poll, "poll", 0, "poll at this interval instead of using native notifications")
	return cmd
}

// watch checks the existing sources in dirs once and then every batch of
// changed sources until ctx is done
func (a *app) watch(ctx context.Context, cmd *cobra.Command, dirs []string, poll time.Duration) error {
	var w watch.Watcher
	if poll > 0 {
		w = watch.NewPollWatcher(ctx, poll)
	} else {
		fw, err := watch.NewFSWatcher()
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		w = fw
	}
	defer w.Close()

	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}

	var initial []string
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		matches, err := filepath.Glob(filepath.Join(dir, "*"+watch.SourceExt))
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		initial = append(initial, matches...)
	}
	a.logger.Info("watching %s (debounce %s)", strings.Join(dirs, ", "), a.cfg.Watch.Debounce)

	if len(initial) > 0 {
		sort.Strings(initial)
		a.checkBatch(r, initial)
	}

	batches := watch.Debounce(ctx, w.Events(), a.cfg.Watch.Debounce.Duration, watch.IsSourceChange)
	for {
		select {
		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			a.checkBatch(r, batch)
		case err := <-w.Errors():
			a.logger.Warn("watch error: %v", err)
		}
	}
}

// checkBatch reparses files under a fresh run identifier. Files that vanished
// between the event and the read are skipped.
func (a *app) checkBatch(r *report.Renderer, files []string) {
	log := a.logger.WithRun()
	log.Info("checking %d file(s)", len(files))

	opts := a.cfg.ParserOptions()
	results := make([]*report.Result, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Warn("skipping %s: %v", file, err)
			continue
		}
		res := report.Parse(file, string(data), log.RunID, opts...)
		if err := r.Check(res); err != nil {
			log.Error("failed to write report for %s: %v", file, err)
			return
		}
		results = append(results, res)
	}

	if err := r.Summary(results); err != nil {
		log.Error("failed to write summary: %v", err)
	}
}
