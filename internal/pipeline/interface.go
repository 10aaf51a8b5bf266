package pipeline

import "context"

// Pipeline runs the chunked transcription workflow.
type Pipeline interface {
	// Process handles one media item end to end: skip-if-done, probe,
	// split, per-chunk transcription, assembly, persistence, optional
	// summary, temp cleanup.
	Process(ctx context.Context, mediaPath string) error
	// ProcessAll discovers the input directory and processes every item
	// sequentially. Per-item failures are logged and skipped; quota
	// exhaustion aborts the run.
	ProcessAll(ctx context.Context) error
}
