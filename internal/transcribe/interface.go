package transcribe

import "context"

// Transcriber converts one media file (a whole short item or a single
// chunk) into text. durationSec is a hint used for upload wait heuristics;
// pass 0 when unknown.
type Transcriber interface {
	Transcribe(ctx context.Context, path string, durationSec float64) (string, error)
}
