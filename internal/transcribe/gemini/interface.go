package gemini

import "context"

// FileState is the remote processing state of an uploaded file.
type FileState int

const (
	StateProcessing FileState = iota
	StateActive
	StateFailed
)

// FileHandle identifies an uploaded remote file.
type FileHandle struct {
	Name     string
	URI      string
	MIMEType string
}

// Service is the remote surface the pipeline consumes: submit, poll,
// generate, delete. Kept narrow so tests can substitute a fake.
type Service interface {
	Upload(ctx context.Context, path string) (*FileHandle, error)
	State(ctx context.Context, name string) (FileState, error)
	// Generate issues a file-grounded generation request under the
	// configured request timeout.
	Generate(ctx context.Context, prompt string, file *FileHandle) (string, error)
	// GenerateText issues a text-only generation request (summaries).
	GenerateText(ctx context.Context, prompt string) (string, error)
	Delete(ctx context.Context, name string) error
}
