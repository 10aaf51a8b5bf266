package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"media-scribe/internal/media"
)

var (
	splitSource       string
	splitChunkMinutes int
)

var videoExtensions = []string{".mp4", ".mkv", ".mov", ".avi", ".webm"}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the first video in a source folder into fixed-length parts",
	Long: `Split the first video found in the source folder into fixed-length
parts using stream copy (no re-encoding). The parts land in the pipeline
input directory so they can be transcribed one by one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		videos, err := media.Discover(splitSource, videoExtensions)
		if err != nil {
			return err
		}
		if len(videos) == 0 {
			return fmt.Errorf("no video file found in %s", splitSource)
		}

		src := videos[0]
		a.log.Info(ctx, "Found video file: %s", filepath.Base(src))
		a.log.Info(ctx, "Splitting into chunks of %d minute(s) each", splitChunkMinutes)

		chunks, err := a.tool.Segment(ctx, src, a.cfg.Paths.Input, splitChunkMinutes*60)
		if err != nil {
			return err
		}

		for _, c := range chunks {
			a.log.Info(ctx, "  %s", c)
		}
		a.log.Info(ctx, "Wrote %d part(s) to %s", len(chunks), a.cfg.Paths.Input)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitSource, "source", "s", "video_to_split",
		"folder containing the large video to split")
	splitCmd.Flags().IntVarP(&splitChunkMinutes, "chunk-minutes", "m", 50,
		"length of each part in minutes")

	rootCmd.AddCommand(splitCmd)
}
