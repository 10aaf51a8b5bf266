package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"media-scribe/internal/config"
	"media-scribe/internal/logger"
	"media-scribe/internal/transcribe"
	"media-scribe/pkg/clock"
)

// NewService creates a Service backed by the Gemini API.
func NewService(ctx context.Context, apiKey string, cfg config.GeminiConfig, log logger.Logger) (Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &implService{
		client:  client,
		model:   cfg.Model,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		logger:  log,
	}, nil
}

type implTranscriber struct {
	svc    Service
	clock  clock.Clock
	logger logger.Logger

	prompt string

	initialWaitRatio float64
	minInitialWait   time.Duration
	unknownWait      time.Duration
	pollInterval     time.Duration
	maxWait          time.Duration

	retryAttempts int
	retryDelay    time.Duration
}

// NewTranscriber creates the chunk transcriber implementing the
// upload -> smart wait -> poll -> generate -> delete cycle.
func NewTranscriber(svc Service, cfg *config.Config, clk clock.Clock, log logger.Logger) transcribe.Transcriber {
	return &implTranscriber{
		svc:              svc,
		clock:            clk,
		logger:           log,
		prompt:           cfg.Gemini.Prompt,
		initialWaitRatio: cfg.Polling.InitialWaitRatio,
		minInitialWait:   time.Duration(cfg.Polling.MinInitialWaitSeconds) * time.Second,
		unknownWait:      time.Duration(cfg.Polling.UnknownDurationWaitSeconds) * time.Second,
		pollInterval:     time.Duration(cfg.Polling.IntervalSeconds) * time.Second,
		maxWait:          time.Duration(cfg.Polling.MaxWaitMinutes) * time.Minute,
		retryAttempts:    cfg.Retry.Attempts,
		retryDelay:       time.Duration(cfg.Retry.DelaySeconds) * time.Second,
	}
}
