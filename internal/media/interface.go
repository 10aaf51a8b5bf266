package media

import "context"

// Tool wraps the external ffmpeg/ffprobe operations the pipeline needs.
type Tool interface {
	// Duration returns the media duration in seconds. An error means the
	// duration is unknown; callers fall back to conservative defaults.
	Duration(ctx context.Context, path string) (float64, error)

	// Segment splits src into fixed-length chunks inside destDir and
	// returns the chunk paths in index order. The last chunk may be
	// shorter than chunkSeconds.
	Segment(ctx context.Context, src, destDir string, chunkSeconds int) ([]string, error)

	// ConvertTo16kWav rewrites src as a cleaned mono 16 kHz WAV at dest.
	ConvertTo16kWav(ctx context.Context, src, dest string) error
}
