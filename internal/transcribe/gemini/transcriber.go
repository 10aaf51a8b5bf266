package gemini

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"media-scribe/internal/logger"
	"media-scribe/internal/transcribe"
	"media-scribe/pkg/clock"
)

// Transcribe uploads the file, waits until the remote side has processed
// it, asks the model for a transcript, and always deletes the uploaded
// resource afterward. Transient transport failures are retried a fixed
// number of times; each attempt is a fresh upload with its own cleanup.
func (t *implTranscriber) Transcribe(ctx context.Context, path string, durationSec float64) (string, error) {
	attempts := t.retryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := t.transcribeOnce(ctx, path, durationSec)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if errors.Is(err, transcribe.ErrQuotaExhausted) || !transcribe.IsTransient(err) {
			return "", err
		}

		t.logger.Warn(ctx, "Transient error on %s (attempt %d/%d): %v",
			filepath.Base(path), attempt, attempts, err)
		if attempt < attempts {
			if serr := t.clock.Sleep(ctx, t.retryDelay); serr != nil {
				return "", serr
			}
		}
	}

	return "", lastErr
}

func (t *implTranscriber) transcribeOnce(ctx context.Context, path string, durationSec float64) (_ string, err error) {
	file, err := t.svc.Upload(ctx, path)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}

	// The uploaded resource is deleted exactly once, whatever happens
	// after the upload. WithoutCancel keeps the cleanup attempt alive
	// even when the surrounding context is already cancelled.
	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)
		if derr := t.svc.Delete(cleanupCtx, file.Name); derr != nil {
			t.logger.Warn(cleanupCtx, "Failed to delete remote file %s: %v", file.Name, derr)
		} else {
			t.logger.Debug(cleanupCtx, "Deleted remote file %s", file.Name)
		}
	}()

	if err := t.waitActive(ctx, file.Name, durationSec); err != nil {
		return "", err
	}

	text, err := t.svc.Generate(ctx, t.prompt, file)
	if err != nil {
		return "", fmt.Errorf("generate transcript: %w", err)
	}

	return text, nil
}

func (t *implTranscriber) waitActive(ctx context.Context, name string, durationSec float64) error {
	initial := t.initialWait(durationSec)
	t.logger.Info(ctx, "Upload initiated, smart wait of %s before polling", initial)
	if err := t.clock.Sleep(ctx, initial); err != nil {
		return err
	}

	return WaitActive(ctx, t.svc, t.clock, t.logger, name, t.pollInterval, t.maxWait)
}

// WaitActive polls the remote file state at a fixed interval until it
// leaves PROCESSING, bounded by maxWait. A FAILED state is an error.
func WaitActive(ctx context.Context, svc Service, clk clock.Clock, log logger.Logger, name string, interval, maxWait time.Duration) error {
	deadline := clk.Now().Add(maxWait)
	for {
		state, err := svc.State(ctx, name)
		if err != nil {
			return fmt.Errorf("poll file state: %w", err)
		}

		switch state {
		case StateActive:
			return nil
		case StateFailed:
			return fmt.Errorf("remote processing failed for %s", name)
		}

		if clk.Now().After(deadline) {
			return fmt.Errorf("file %s still processing after %s", name, maxWait)
		}

		log.Info(ctx, "File still processing, waiting %s", interval)
		if err := clk.Sleep(ctx, interval); err != nil {
			return err
		}
	}
}

func (t *implTranscriber) initialWait(durationSec float64) time.Duration {
	if durationSec <= 0 {
		return t.unknownWait
	}

	wait := time.Duration(durationSec*t.initialWaitRatio) * time.Second
	if wait < t.minInitialWait {
		return t.minInitialWait
	}
	return wait
}
