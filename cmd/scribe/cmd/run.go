package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Transcribe every media file in the input directory",
	Long: `Scan the input directory (oldest files first) and run the chunked
transcription pipeline over each file. Items whose transcript already
exists are skipped without any remote calls. Quota exhaustion stops the
run; every other failure skips the item and continues.`,
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

		a.log.Info(ctx, "========================================")
		a.log.Info(ctx, "Starting transcription run")
		a.log.Info(ctx, "Input: %s", a.cfg.Paths.Input)
		a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
		a.log.Info(ctx, "Engine: %s", a.cfg.Engine)
		a.log.Info(ctx, "========================================")

		return p.ProcessAll(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
