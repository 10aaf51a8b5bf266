package media

import (
	"context"
	"fmt"
)

// ConvertTo16kWav rewrites src as mono 16 kHz PCM WAV with a light clean-up
// filter chain. This is the format the Whisper endpoint handles best.
func (t *implTool) ConvertTo16kWav(ctx context.Context, src, dest string) error {
	t.logger.Info(ctx, "Preprocessing %s -> %s", src, dest)

	args := []string{
		"-y",
		"-i", src,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		"-af", "highpass=f=100, lowpass=f=6000, dynaudnorm",
		dest,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg convert: %w", err)
	}

	return nil
}
