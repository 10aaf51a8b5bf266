package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"media-scribe/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the input directory and transcribe new files as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		p, err := a.buildPipeline(ctx)
		if err != nil {
			return err
		}

		// One file at a time: the pipeline paces itself against remote
		// rate limits and must stay sequential.
		w, err := watcher.New(a.cfg.Paths.Input, p.Process, a.log, 1)
		if err != nil {
			return err
		}
		defer w.Stop()

		a.log.Info(ctx, "========================================")
		a.log.Info(ctx, "Watching %s, press Ctrl+C to stop", a.cfg.Paths.Input)
		a.log.Info(ctx, "========================================")

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
