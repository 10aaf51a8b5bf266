package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultExtensions are the media file extensions the pipeline picks up.
var DefaultExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm",
	".m4a", ".mp3", ".wav", ".flac", ".aac", ".ogg",
}

// Discover lists the media files in dir with one of the given extensions,
// sorted by modification time (oldest first).
func Discover(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var found []candidate
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path:    filepath.Join(dir, e.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].modTime.Before(found[j].modTime)
	})

	paths := make([]string, 0, len(found))
	for _, c := range found {
		paths = append(paths, c.path)
	}

	return paths, nil
}
