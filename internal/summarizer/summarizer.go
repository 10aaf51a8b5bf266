package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"media-scribe/internal/transcribe"
)

// Summarize sends one transcript through the remote model and returns the
// summary text. No retry; callers decide what a failure means.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(s.prompt, transcript)

	summary, err := s.svc.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	return strings.TrimSpace(summary), nil
}

// SummarizeAll reads every transcript in srcDir, calls the model for each,
// and writes <name>.md (and optionally <name>.docx) into destDir. Items
// whose markdown output already exists are skipped. Quota exhaustion
// aborts the batch; other failures skip the item.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	transcripts, err := s.discoverTranscripts(srcDir)
	if err != nil {
		return fmt.Errorf("discover transcripts: %w", err)
	}

	if len(transcripts) == 0 {
		s.logger.Info(ctx, "No transcript files found in %s", srcDir)
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcript(s) to summarize", len(transcripts))

	successCount := 0
	failCount := 0

	for i, path := range transcripts {
		name := strings.TrimSuffix(filepath.Base(path), s.transcriptSuffix)
		mdPath := filepath.Join(destDir, name+".md")

		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Info(ctx, "[%d/%d] Skipping %s, summary already exists", i+1, len(transcripts), name)
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(transcripts), name)

		content, err := os.ReadFile(path)
		if err != nil {
			s.logger.Error(ctx, "Failed to read %s: %v", path, err)
			failCount++
			continue
		}

		summary, err := s.Summarize(ctx, string(content))
		if err != nil {
			if errors.Is(err, transcribe.ErrQuotaExhausted) {
				return fmt.Errorf("summarize %s: %w", name, err)
			}
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			failCount++
			continue
		}

		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			name,
			time.Now().Format("2006-01-02 15:04"),
			summary,
		)

		if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
			s.logger.Error(ctx, "Failed to write %s: %v", mdPath, err)
			failCount++
			continue
		}

		if s.docx {
			docxPath := filepath.Join(destDir, name+".docx")
			if err := markdownToDocx(name, summary, docxPath); err != nil {
				s.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
			}
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

func (s *implSummarizer) discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := e.Name()
		// Summary artifacts live next to transcripts; never feed them back in.
		if strings.HasSuffix(name, s.summarySuffix) {
			continue
		}
		if strings.HasSuffix(name, s.transcriptSuffix) {
			files = append(files, filepath.Join(dir, name))
		}
	}

	sort.Strings(files)
	return files, nil
}
