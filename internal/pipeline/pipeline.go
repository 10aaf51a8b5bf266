package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"media-scribe/internal/media"
	"media-scribe/internal/transcribe"
)

const summaryPlaceholder = "Summary generation failed. The transcript was saved normally; re-run 'scribe summarize' to retry."

// ProcessAll discovers the input directory (oldest first) and processes
// each item in sequence. Only quota exhaustion stops the run.
func (p *implPipeline) ProcessAll(ctx context.Context) error {
	files, err := media.Discover(p.cfg.Paths.Input, media.DefaultExtensions)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		p.logger.Info(ctx, "No media files found in %s, nothing to do", p.cfg.Paths.Input)
		return nil
	}

	p.logger.Info(ctx, "Found %d media file(s) to process", len(files))

	for i, f := range files {
		p.logger.Info(ctx, "[%d/%d] %s", i+1, len(files), filepath.Base(f))

		if err := p.Process(ctx, f); err != nil {
			if errors.Is(err, transcribe.ErrQuotaExhausted) {
				p.logger.Error(ctx, "Quota exhausted, abandoning remaining items: %v", err)
				return err
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Error(ctx, "Failed to process %s: %v", f, err)
		}
	}

	p.logger.Info(ctx, "All files processed")
	return nil
}

// Process runs the full per-item state machine. The transcript artifact's
// existence is the skip/resume signal; it is checked before anything else.
func (p *implPipeline) Process(ctx context.Context, mediaPath string) error {
	startTime := time.Now()
	stem := media.Stem(mediaPath)
	outPath := filepath.Join(p.cfg.Paths.Output, stem+p.cfg.Output.TranscriptSuffix)

	if _, err := os.Stat(outPath); err == nil {
		p.logger.Info(ctx, "Skipping %s, transcript already exists", filepath.Base(mediaPath))
		return nil
	}

	duration, err := p.tool.Duration(ctx, mediaPath)
	if err != nil {
		p.logger.Warn(ctx, "Could not determine duration of %s, treating as unknown: %v", filepath.Base(mediaPath), err)
		duration = 0
	} else {
		p.logger.Info(ctx, "Media duration: %dm %ds", int(duration)/60, int(duration)%60)
	}

	plan := media.PlanChunks(duration, p.thresholdSeconds(), p.chunkSeconds())

	chunks := []string{mediaPath}
	if plan.Split {
		tempDir := filepath.Join(p.cfg.Paths.Temp, stem+"_chunks")
		if err := os.MkdirAll(tempDir, 0755); err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer func() {
			if rerr := os.RemoveAll(tempDir); rerr != nil {
				p.logger.Warn(ctx, "Failed to remove temp dir %s: %v", tempDir, rerr)
			}
		}()

		chunks, err = p.tool.Segment(ctx, mediaPath, tempDir, plan.ChunkSeconds)
		if err != nil {
			return fmt.Errorf("segment %s: %w", filepath.Base(mediaPath), err)
		}
	}

	results, err := p.transcribeChunks(ctx, plan, chunks, duration)
	if err != nil {
		return err
	}

	joined, err := Assemble(results, p.policy)
	if err != nil {
		return fmt.Errorf("assemble %s: %w", filepath.Base(mediaPath), err)
	}

	if err := os.WriteFile(outPath, []byte(joined+"\n"), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	p.logger.Info(ctx, "Transcript saved to %s (%s)", outPath, time.Since(startTime).Round(time.Second))

	if p.cfg.Summary.Enabled && p.summarizer != nil {
		p.writeSummary(ctx, stem, joined)
	}

	return nil
}

// transcribeChunks runs the strictly sequential per-chunk loop with the
// fixed inter-chunk delay. Chunk failures are tagged, not fatal; quota
// exhaustion aborts immediately.
func (p *implPipeline) transcribeChunks(ctx context.Context, plan media.Plan, chunks []string, totalSec float64) ([]ChunkResult, error) {
	chunkDelay := time.Duration(p.cfg.RateLimit.ChunkDelaySeconds) * time.Second

	results := make([]ChunkResult, 0, len(chunks))
	for i, chunkPath := range chunks {
		if i > 0 {
			if err := p.clock.Sleep(ctx, chunkDelay); err != nil {
				return nil, err
			}
		}

		p.logger.Info(ctx, "Transcribing chunk %d/%d: %s", i+1, len(chunks), filepath.Base(chunkPath))

		text, err := p.transcriber.Transcribe(ctx, chunkPath, plan.ChunkDuration(i, totalSec))
		if err != nil {
			if errors.Is(err, transcribe.ErrQuotaExhausted) || errors.Is(err, context.Canceled) {
				return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			p.logger.Error(ctx, "Chunk %d/%d failed: %v", i+1, len(chunks), err)
		}

		results = append(results, ChunkResult{Index: i, Path: chunkPath, Text: text, Err: err})
	}

	return results, nil
}

// writeSummary persists the derived summary next to the transcript. A
// failed summarization writes a placeholder and never invalidates the
// transcript that is already on disk.
func (p *implPipeline) writeSummary(ctx context.Context, stem, transcript string) {
	sumPath := filepath.Join(p.cfg.Paths.Output, stem+p.cfg.Output.SummarySuffix)

	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		p.logger.Error(ctx, "Summarization failed for %s: %v", stem, err)
		summary = summaryPlaceholder
	}

	if err := os.WriteFile(sumPath, []byte(summary+"\n"), 0644); err != nil {
		p.logger.Error(ctx, "Failed to write summary %s: %v", sumPath, err)
		return
	}

	p.logger.Info(ctx, "Summary saved to %s", sumPath)
}

func (p *implPipeline) thresholdSeconds() int {
	return p.cfg.Chunking.ThresholdMinutes * 60
}

func (p *implPipeline) chunkSeconds() int {
	return p.cfg.Chunking.ChunkMinutes * 60
}
