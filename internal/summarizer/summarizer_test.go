package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-scribe/internal/config"
	"media-scribe/internal/logger"
	"media-scribe/internal/transcribe"
	"media-scribe/internal/transcribe/gemini"
)

type fakeService struct {
	calls   int
	prompts []string
	fn      func(call int) (string, error)
}

func (f *fakeService) Upload(ctx context.Context, path string) (*gemini.FileHandle, error) {
	return nil, errors.New("not used")
}

func (f *fakeService) State(ctx context.Context, name string) (gemini.FileState, error) {
	return gemini.StateFailed, errors.New("not used")
}

func (f *fakeService) Generate(ctx context.Context, prompt string, file *gemini.FileHandle) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeService) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.fn != nil {
		return f.fn(f.calls)
	}
	return "the summary\n", nil
}

func (f *fakeService) Delete(ctx context.Context, name string) error {
	return errors.New("not used")
}

func testSummaryConfig() (config.SummaryConfig, config.OutputConfig) {
	cfg := &config.Config{
		Paths: config.PathsConfig{Input: "in", Output: "out"},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg.Summary, cfg.Output
}

func TestSummarize(t *testing.T) {
	svc := &fakeService{}
	sumCfg, outCfg := testSummaryConfig()
	s := New(svc, sumCfg, outCfg, logger.New("error"))

	got, err := s.Summarize(context.Background(), "hello world transcript")
	require.NoError(t, err)
	assert.Equal(t, "the summary", got, "summary text is trimmed")

	require.Len(t, svc.prompts, 1)
	assert.Contains(t, svc.prompts[0], "hello world transcript", "transcript must be embedded in the prompt")
}

func TestSummarizeServiceError(t *testing.T) {
	svc := &fakeService{fn: func(call int) (string, error) {
		return "", errors.New("model unavailable")
	}}
	sumCfg, outCfg := testSummaryConfig()
	s := New(svc, sumCfg, outCfg, logger.New("error"))

	_, err := s.Summarize(context.Background(), "transcript")
	require.Error(t, err)
}

func TestSummarizeAll(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "summaries")

	sumCfg, outCfg := testSummaryConfig()

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0644))
	}
	write("a"+outCfg.TranscriptSuffix, "transcript a")
	write("b"+outCfg.TranscriptSuffix, "transcript b")
	// Summary artifacts next to transcripts must never be fed back in.
	write("a"+outCfg.SummarySuffix, "old summary")
	write("notes.md", "not a transcript")

	svc := &fakeService{}
	s := New(svc, sumCfg, outCfg, logger.New("error"))

	require.NoError(t, s.SummarizeAll(context.Background(), srcDir, destDir))

	assert.Equal(t, 2, svc.calls)
	for _, name := range []string{"a.md", "b.md"} {
		data, err := os.ReadFile(filepath.Join(destDir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "the summary")
	}
}

func TestSummarizeAllSkipsExisting(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	sumCfg, outCfg := testSummaryConfig()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a"+outCfg.TranscriptSuffix), []byte("transcript"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "a.md"), []byte("already summarized"), 0644))

	svc := &fakeService{}
	s := New(svc, sumCfg, outCfg, logger.New("error"))

	require.NoError(t, s.SummarizeAll(context.Background(), srcDir, destDir))
	assert.Equal(t, 0, svc.calls, "existing markdown must short-circuit the item")

	data, err := os.ReadFile(filepath.Join(destDir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "already summarized", string(data))
}

func TestSummarizeAllQuotaAbortsBatch(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	sumCfg, outCfg := testSummaryConfig()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a"+outCfg.TranscriptSuffix), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "b"+outCfg.TranscriptSuffix), []byte("y"), 0644))

	svc := &fakeService{fn: func(call int) (string, error) {
		return "", fmt.Errorf("generate text: %w", transcribe.ErrQuotaExhausted)
	}}
	s := New(svc, sumCfg, outCfg, logger.New("error"))

	err := s.SummarizeAll(context.Background(), srcDir, destDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, transcribe.ErrQuotaExhausted)
	assert.Equal(t, 1, svc.calls, "the batch must stop at the first quota failure")
}

func TestSummarizeAllContinuesPastItemFailure(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	sumCfg, outCfg := testSummaryConfig()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a"+outCfg.TranscriptSuffix), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "b"+outCfg.TranscriptSuffix), []byte("y"), 0644))

	svc := &fakeService{fn: func(call int) (string, error) {
		if call == 1 {
			return "", errors.New("model unavailable")
		}
		return "the summary", nil
	}}
	s := New(svc, sumCfg, outCfg, logger.New("error"))

	require.NoError(t, s.SummarizeAll(context.Background(), srcDir, destDir))
	assert.Equal(t, 2, svc.calls)

	_, err := os.Stat(filepath.Join(destDir, "a.md"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(destDir, "b.md"))
	assert.NoError(t, err)
}
