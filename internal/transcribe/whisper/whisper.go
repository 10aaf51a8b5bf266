package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"media-scribe/internal/config"
	"media-scribe/internal/logger"
	"media-scribe/internal/media"
	"media-scribe/internal/transcribe"
)

type implTranscriber struct {
	client     *openai.Client
	tool       media.Tool
	logger     logger.Logger
	model      string
	language   string
	maxBytes   int64
	preprocess bool
	tempDir    string
}

// New creates a Transcriber backed by the OpenAI audio transcription API.
// Unlike the Gemini engine there is no remote upload lifecycle to manage;
// the file rides along with the request, so it must fit the API byte limit.
func New(client *openai.Client, cfg *config.Config, tool media.Tool, log logger.Logger) transcribe.Transcriber {
	return &implTranscriber{
		client:     client,
		tool:       tool,
		logger:     log,
		model:      cfg.Whisper.Model,
		language:   cfg.Whisper.Language,
		maxBytes:   cfg.Whisper.MaxUploadBytes,
		preprocess: cfg.Whisper.Preprocess,
		tempDir:    cfg.Paths.Temp,
	}
}

func (t *implTranscriber) Transcribe(ctx context.Context, path string, durationSec float64) (string, error) {
	src := path

	if t.preprocess {
		clean := filepath.Join(t.tempDir, media.Stem(path)+"_clean.wav")
		if err := t.tool.ConvertTo16kWav(ctx, path, clean); err != nil {
			return "", fmt.Errorf("preprocess audio: %w", err)
		}
		defer func() {
			if rerr := os.Remove(clean); rerr != nil {
				t.logger.Warn(ctx, "Failed to remove temp file %s: %v", clean, rerr)
			}
		}()
		src = clean
	}

	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", src, err)
	}
	if info.Size() > t.maxBytes {
		return "", fmt.Errorf("%s is %d bytes, over the %d byte API limit; lower chunking.chunk_minutes", filepath.Base(src), info.Size(), t.maxBytes)
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: src,
		Language: t.language,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", mapAPIError(err)
	}

	return strings.TrimSpace(resp.Text), nil
}

func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return fmt.Errorf("create transcription: %w: %v", transcribe.ErrQuotaExhausted, err)
	}
	return fmt.Errorf("create transcription: %w", err)
}
