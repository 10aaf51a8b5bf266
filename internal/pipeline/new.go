package pipeline

import (
	"media-scribe/internal/config"
	"media-scribe/internal/logger"
	"media-scribe/internal/media"
	"media-scribe/internal/summarizer"
	"media-scribe/internal/transcribe"
	"media-scribe/pkg/clock"
)

type implPipeline struct {
	cfg         *config.Config
	tool        media.Tool
	transcriber transcribe.Transcriber
	summarizer  summarizer.Summarizer
	clock       clock.Clock
	logger      logger.Logger
	policy      Policy
}

// New creates a Pipeline. summ may be nil when summaries are disabled.
func New(cfg *config.Config, tool media.Tool, tr transcribe.Transcriber, summ summarizer.Summarizer, clk clock.Clock, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		tool:        tool,
		transcriber: tr,
		summarizer:  summ,
		clock:       clk,
		logger:      log,
		policy:      ParsePolicy(cfg.Assembly.OnChunkFailure),
	}
}
