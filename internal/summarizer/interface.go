package summarizer

import "context"

// Summarizer produces derived summaries from transcripts.
type Summarizer interface {
	// Summarize issues one remote generation call for a single transcript.
	Summarize(ctx context.Context, transcript string) (string, error)
	// SummarizeAll batch-summarizes the transcript files in srcDir into
	// markdown (and optionally DOCX) documents under destDir.
	SummarizeAll(ctx context.Context, srcDir, destDir string) error
}
