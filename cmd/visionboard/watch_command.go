package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"visionboard/internal/analysis"
	"visionboard/internal/store"
	"visionboard/internal/watch"
)

// newInboxHandler analyzes and stores each dropped image. Inbox images arrive
// one at a time, so a running counter stands in for the batch position; that
// keeps substituted results cycling through the fallback library across a
// session instead of repeating the first entry. The watcher invokes the
// handler from a single goroutine, so a plain counter is safe.
func newInboxHandler(analyzer *analysis.Analyzer, st *store.Store) watch.Handler {
	index := 0
	return func(ctx context.Context, path string) error {
		record, err := analyzer.AnalyzeOne(ctx, path, index)
		if err != nil {
			return err
		}
		index++
		return st.Save(ctx, record)
	}
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the inbox directory and analyze dropped images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Paths.InboxDir == "" {
				return fmt.Errorf("no inbox_dir configured; set [paths] inbox_dir in the config file")
			}
			analyzer, err := ctx.newAnalyzer()
			if err != nil {
				return err
			}

			return ctx.withStore(func(st *store.Store) error {
				watcher, err := watch.New(cfg.Paths.InboxDir, ctx.ensureLogger(), newInboxHandler(analyzer, st))
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (ctrl-c to stop)\n", cfg.Paths.InboxDir)
				err = watcher.Run(runCtx)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
}
