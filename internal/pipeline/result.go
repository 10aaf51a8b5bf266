package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAllChunksFailed means no chunk produced text; no artifact is written
// so the item can be retried on a later run.
var ErrAllChunksFailed = errors.New("all chunks failed")

// ChunkResult is the tagged outcome of one chunk transcription.
type ChunkResult struct {
	Index int
	Path  string
	Text  string
	Err   error
}

// Failed reports whether this chunk produced no usable text.
func (r ChunkResult) Failed() bool {
	return r.Err != nil
}

// Policy controls how assembly treats failed chunks.
type Policy int

const (
	// PolicyDropFailed skips failed chunks and keeps the rest.
	PolicyDropFailed Policy = iota
	// PolicyFailItem fails the whole item when any chunk failed.
	PolicyFailItem
)

// ParsePolicy maps the config value onto a Policy. Unknown values fall
// back to dropping failed chunks, the historical behavior.
func ParsePolicy(s string) Policy {
	if s == "fail" {
		return PolicyFailItem
	}
	return PolicyDropFailed
}

// Assemble joins chunk texts in index order with a blank-line separator.
// Results must already be ordered by index.
func Assemble(results []ChunkResult, policy Policy) (string, error) {
	var pieces []string
	for _, r := range results {
		if r.Failed() {
			if policy == PolicyFailItem {
				return "", fmt.Errorf("chunk %d failed: %w", r.Index, r.Err)
			}
			continue
		}
		pieces = append(pieces, r.Text)
	}

	if len(pieces) == 0 {
		return "", ErrAllChunksFailed
	}

	return strings.Join(pieces, "\n\n"), nil
}
