package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Batch transcription of local audio/video files via remote speech-to-text models",
	Long: `scribe batch-processes local audio/video files:

- Probes media duration and splits long files into fixed-length chunks (ffmpeg)
- Transcribes each chunk through Gemini (upload/poll/generate/delete) or OpenAI Whisper
- Concatenates chunk transcripts and optionally summarizes them
- Uses the presence of the transcript file as the skip/resume signal`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "path to the YAML config file")
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
