package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"media-scribe/internal/media"
	"media-scribe/internal/transcribe/gemini"
)

const (
	compareSimplePrompt = "Please provide a clean transcription of this audio/video."

	compareDetailedPrompt = `You are an expert transcriptionist. Your task is to transcribe the following video with high accuracy. The output format MUST include timestamps for every distinct segment of speech. Each entry should have a start and end time followed by the transcribed text. Follow this format exactly:

[ HhMmSs - HhMmSs ] Text of the speech segment.

Example:
[ 0h0m5s - 0h0m12s ] This is the first segment of spoken words.
[ 0h0m14s - 0h0m19s ] This is the second segment, after a brief pause.`
)

var compareFile string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Transcribe one file with two different prompts for comparison",
	Long: `Upload a single media file once, then generate two transcriptions of
it: one with a simple prompt and one with a detailed timestamp prompt.
Useful for picking a prompt before a large batch run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		src := compareFile
		if src == "" {
			files, err := media.Discover(a.cfg.Paths.Input, media.DefaultExtensions)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no media file found in %s", a.cfg.Paths.Input)
			}
			src = files[0]
		}

		svc, err := a.geminiService(ctx)
		if err != nil {
			return err
		}

		a.log.Info(ctx, "Uploading %s", filepath.Base(src))
		file, err := svc.Upload(ctx, src)
		if err != nil {
			return err
		}
		defer func() {
			cleanupCtx := context.WithoutCancel(ctx)
			if derr := svc.Delete(cleanupCtx, file.Name); derr != nil {
				a.log.Warn(cleanupCtx, "Failed to delete remote file %s: %v", file.Name, derr)
			}
		}()

		interval := time.Duration(a.cfg.Polling.IntervalSeconds) * time.Second
		maxWait := time.Duration(a.cfg.Polling.MaxWaitMinutes) * time.Minute
		if err := gemini.WaitActive(ctx, svc, a.clock, a.log, file.Name, interval, maxWait); err != nil {
			return err
		}

		stem := media.Stem(src)
		runs := []struct {
			label  string
			prompt string
			output string
		}{
			{"simple prompt", compareSimplePrompt, filepath.Join(a.cfg.Paths.Output, stem+".simple.txt")},
			{"detailed timestamp prompt", compareDetailedPrompt, filepath.Join(a.cfg.Paths.Output, stem+".with_timestamps.txt")},
		}

		for _, r := range runs {
			if _, err := os.Stat(r.output); err == nil {
				a.log.Info(ctx, "Output %s already exists, skipping", r.output)
				continue
			}

			a.log.Info(ctx, "Generating transcription with %s", r.label)
			text, err := svc.Generate(ctx, r.prompt, file)
			if err != nil {
				return fmt.Errorf("%s: %w", r.label, err)
			}

			if err := os.WriteFile(r.output, []byte(text+"\n"), 0644); err != nil {
				return fmt.Errorf("write %s: %w", r.output, err)
			}
			a.log.Info(ctx, "Saved %s", r.output)
		}

		a.log.Info(ctx, "Comparison complete, check %s", a.cfg.Paths.Output)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVarP(&compareFile, "file", "f", "",
		"media file to compare (defaults to the first file in the input directory)")

	rootCmd.AddCommand(compareCmd)
}
