package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Duration probes the media duration in seconds using ffprobe.
func (t *implTool) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := t.executor.Execute(ctx, "ffprobe", args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", strings.TrimSpace(out), err)
	}

	return duration, nil
}
