package summarizer

import (
	"media-scribe/internal/config"
	"media-scribe/internal/logger"
	"media-scribe/internal/transcribe/gemini"
)

type implSummarizer struct {
	svc              gemini.Service
	logger           logger.Logger
	prompt           string
	docx             bool
	transcriptSuffix string
	summarySuffix    string
}

// New creates a Summarizer that sends transcripts through the given
// remote service. cfg.Prompt must contain one %s verb for the transcript.
func New(svc gemini.Service, cfg config.SummaryConfig, output config.OutputConfig, log logger.Logger) Summarizer {
	return &implSummarizer{
		svc:              svc,
		logger:           log,
		prompt:           cfg.Prompt,
		docx:             cfg.Docx,
		transcriptSuffix: output.TranscriptSuffix,
		summarySuffix:    output.SummarySuffix,
	}
}
