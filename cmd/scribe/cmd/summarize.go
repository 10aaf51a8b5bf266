package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"media-scribe/internal/summarizer"
)

var (
	summarizeSrc  string
	summarizeDest string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Batch-summarize existing transcripts into markdown and DOCX",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		svc, err := a.geminiService(ctx)
		if err != nil {
			return err
		}

		src := summarizeSrc
		if src == "" {
			src = a.cfg.Paths.Output
		}
		dest := summarizeDest
		if dest == "" {
			dest = filepath.Join(a.cfg.Paths.Output, "summaries")
		}

		s := summarizer.New(svc, a.cfg.Summary, a.cfg.Output, a.log)
		return s.SummarizeAll(ctx, src, dest)
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeSrc, "src", "", "directory of transcripts (defaults to paths.output)")
	summarizeCmd.Flags().StringVar(&summarizeDest, "dest", "", "directory for summaries (defaults to paths.output/summaries)")

	rootCmd.AddCommand(summarizeCmd)
}
