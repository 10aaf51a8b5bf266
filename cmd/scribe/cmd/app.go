package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"

	"media-scribe/internal/config"
	"media-scribe/internal/logger"
	"media-scribe/internal/media"
	"media-scribe/internal/pipeline"
	"media-scribe/internal/summarizer"
	"media-scribe/internal/transcribe"
	"media-scribe/internal/transcribe/gemini"
	"media-scribe/internal/transcribe/whisper"
	"media-scribe/pkg/clock"
	"media-scribe/pkg/executor"
)

// app holds the collaborators every subcommand needs.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	tool  media.Tool
	clock clock.Clock
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	var log logger.Logger
	if cfg.Logging.File != "" {
		log, err = logger.NewWithFile(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return nil, err
		}
	} else {
		log = logger.New(cfg.Logging.Level)
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()

	return &app{
		cfg:   cfg,
		log:   log,
		tool:  media.New(exec, log),
		clock: clock.New(),
	}, nil
}

func (a *app) geminiService(ctx context.Context) (gemini.Service, error) {
	key, err := config.GetAPIKeys().KeyForEngine("gemini")
	if err != nil {
		return nil, err
	}
	return gemini.NewService(ctx, key, a.cfg.Gemini, a.log)
}

// buildPipeline wires the transcription engine and optional summarizer
// selected by the config into a Pipeline.
func (a *app) buildPipeline(ctx context.Context) (pipeline.Pipeline, error) {
	var svc gemini.Service
	if a.cfg.Engine == "gemini" || a.cfg.Summary.Enabled {
		var err error
		svc, err = a.geminiService(ctx)
		if err != nil {
			return nil, err
		}
	}

	var tr transcribe.Transcriber
	switch a.cfg.Engine {
	case "whisper":
		key, err := config.GetAPIKeys().KeyForEngine("whisper")
		if err != nil {
			return nil, err
		}
		tr = whisper.New(openai.NewClient(key), a.cfg, a.tool, a.log)
	default:
		tr = gemini.NewTranscriber(svc, a.cfg, a.clock, a.log)
	}

	var summ summarizer.Summarizer
	if a.cfg.Summary.Enabled {
		summ = summarizer.New(svc, a.cfg.Summary, a.cfg.Output, a.log)
	}

	return pipeline.New(a.cfg, a.tool, tr, summ, a.clock, a.log), nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
