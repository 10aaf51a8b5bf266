package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Segment splits src into chunkSeconds-long pieces using the ffmpeg segment
// muxer. Streams are copied without re-encoding, so this is cheap. Chunks
// are named <stem>_part_000<ext>, <stem>_part_001<ext>, ... inside destDir.
func (t *implTool) Segment(ctx context.Context, src, destDir string, chunkSeconds int) ([]string, error) {
	stem := Stem(src)
	ext := filepath.Ext(src)
	pattern := filepath.Join(destDir, stem+"_part_%03d"+ext)

	t.logger.Info(ctx, "Splitting %s into %ds chunks", src, chunkSeconds)

	args := []string{
		"-i", src,
		"-c", "copy",
		"-map", "0",
		"-segment_time", fmt.Sprintf("%d", chunkSeconds),
		"-f", "segment",
		"-reset_timestamps", "1",
		"-y",
		pattern,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return nil, fmt.Errorf("ffmpeg segment: %w", err)
	}

	chunks, err := listChunks(destDir, stem, ext)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("ffmpeg segment produced no chunks in %s", destDir)
	}

	t.logger.Info(ctx, "Produced %d chunk(s)", len(chunks))
	return chunks, nil
}

func listChunks(dir, stem, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read chunk dir: %w", err)
	}

	prefix := stem + "_part_"
	var chunks []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.EqualFold(filepath.Ext(name), ext) {
			chunks = append(chunks, filepath.Join(dir, name))
		}
	}

	// The %03d index makes lexical order equal chunk order.
	sort.Strings(chunks)
	return chunks, nil
}

// Stem returns the base filename without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
