package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-scribe/internal/config"
	"media-scribe/internal/logger"
	"media-scribe/internal/transcribe"
)

type fakeTool struct {
	duration      float64
	durationErr   error
	durationCalls int
	segmentCalls  int
	segmentErr    error
	numChunks     int
}

func (f *fakeTool) Duration(ctx context.Context, path string) (float64, error) {
	f.durationCalls++
	return f.duration, f.durationErr
}

func (f *fakeTool) Segment(ctx context.Context, src, destDir string, chunkSeconds int) ([]string, error) {
	f.segmentCalls++
	if f.segmentErr != nil {
		return nil, f.segmentErr
	}
	var chunks []string
	for i := 0; i < f.numChunks; i++ {
		p := filepath.Join(destDir, fmt.Sprintf("chunk_part_%03d.mp4", i))
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			return nil, err
		}
		chunks = append(chunks, p)
	}
	return chunks, nil
}

func (f *fakeTool) ConvertTo16kWav(ctx context.Context, src, dest string) error {
	return nil
}

type fakeTranscriber struct {
	calls int
	paths []string
	fn    func(call int, path string) (string, error)
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string, durationSec float64) (string, error) {
	f.calls++
	f.paths = append(f.paths, path)
	if f.fn != nil {
		return f.fn(f.calls, path)
	}
	return fmt.Sprintf("text-%d", f.calls), nil
}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return ctx.Err()
}

type fakeSummarizer struct {
	calls int
	err   error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "the summary", nil
}

func (f *fakeSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	return errors.New("not used")
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Input:  filepath.Join(root, "input"),
			Output: filepath.Join(root, "output"),
			Temp:   filepath.Join(root, "temp"),
		},
	}
	require.NoError(t, cfg.Validate())
	for _, d := range []string{cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Temp} {
		require.NoError(t, os.MkdirAll(d, 0755))
	}
	return cfg
}

func writeMedia(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	p := filepath.Join(cfg.Paths.Input, name)
	require.NoError(t, os.WriteFile(p, []byte("media"), 0644))
	return p
}

func transcriptPath(cfg *config.Config, stem string) string {
	return filepath.Join(cfg.Paths.Output, stem+cfg.Output.TranscriptSuffix)
}

func TestProcessSkipsWhenTranscriptExists(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")
	require.NoError(t, os.WriteFile(transcriptPath(cfg, "talk"), []byte("done\n"), 0644))

	tool := &fakeTool{duration: 600}
	tr := &fakeTranscriber{}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.Process(context.Background(), src))

	assert.Equal(t, 0, tr.calls, "existing transcript must short-circuit before any remote work")
	assert.Equal(t, 0, tool.durationCalls, "existing transcript must short-circuit before probing")

	data, err := os.ReadFile(transcriptPath(cfg, "talk"))
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(data))
}

func TestProcessShortSourceSingleChunk(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 600}
	tr := &fakeTranscriber{}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.Process(context.Background(), src))

	assert.Equal(t, 0, tool.segmentCalls, "short media must not be split")
	assert.Equal(t, 1, tr.calls)
	assert.Equal(t, []string{src}, tr.paths, "single chunk transcribes the source file itself")

	data, err := os.ReadFile(transcriptPath(cfg, "talk"))
	require.NoError(t, err)
	assert.Equal(t, "text-1\n", string(data))
}

func TestProcessLongSourceSplitsAndJoins(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")

	// 40 minutes against the 30-minute default threshold: two chunks.
	tool := &fakeTool{duration: 2400, numChunks: 2}
	tr := &fakeTranscriber{fn: func(call int, path string) (string, error) {
		if call == 1 {
			return "first half", nil
		}
		return "second half", nil
	}}
	clk := &fakeClock{}
	p := New(cfg, tool, tr, nil, clk, logger.New("error"))

	require.NoError(t, p.Process(context.Background(), src))

	assert.Equal(t, 1, tool.segmentCalls)
	assert.Equal(t, 2, tr.calls)

	data, err := os.ReadFile(transcriptPath(cfg, "talk"))
	require.NoError(t, err)
	assert.Equal(t, "first half\n\nsecond half\n", string(data))

	// One inter-chunk delay between the two chunks.
	require.Len(t, clk.sleeps, 1)
	assert.Equal(t, 10*time.Second, clk.sleeps[0])

	// Chunk workspace is cleaned up.
	_, err = os.Stat(filepath.Join(cfg.Paths.Temp, "talk_chunks"))
	assert.True(t, os.IsNotExist(err), "temp chunk dir must be removed")
}

func TestProcessAllChunksFailedWritesNothing(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 2400, numChunks: 2}
	tr := &fakeTranscriber{fn: func(call int, path string) (string, error) {
		return "", errors.New("bad response")
	}}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	err := p.Process(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllChunksFailed)

	_, err = os.Stat(transcriptPath(cfg, "talk"))
	assert.True(t, os.IsNotExist(err), "no transcript may be written when every chunk failed")
}

func TestProcessDropPolicyKeepsPartialTranscript(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 2400, numChunks: 2}
	tr := &fakeTranscriber{fn: func(call int, path string) (string, error) {
		if call == 1 {
			return "", errors.New("bad response")
		}
		return "second half", nil
	}}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.Process(context.Background(), src))

	data, err := os.ReadFile(transcriptPath(cfg, "talk"))
	require.NoError(t, err)
	assert.Equal(t, "second half\n", string(data))
}

func TestProcessFailPolicyRejectsPartialTranscript(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Assembly.OnChunkFailure = "fail"
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 2400, numChunks: 2}
	tr := &fakeTranscriber{fn: func(call int, path string) (string, error) {
		if call == 1 {
			return "", errors.New("bad response")
		}
		return "second half", nil
	}}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	err := p.Process(context.Background(), src)
	require.Error(t, err)

	_, err = os.Stat(transcriptPath(cfg, "talk"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessQuotaAbortsChunkLoop(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 2400, numChunks: 2}
	tr := &fakeTranscriber{fn: func(call int, path string) (string, error) {
		return "", fmt.Errorf("generate: %w", transcribe.ErrQuotaExhausted)
	}}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	err := p.Process(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, transcribe.ErrQuotaExhausted)

	assert.Equal(t, 1, tr.calls, "quota exhaustion must not be retried on later chunks")
	_, err = os.Stat(transcriptPath(cfg, "talk"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessUnknownDurationTreatedAsShort(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{durationErr: errors.New("probe failed")}
	tr := &fakeTranscriber{}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.Process(context.Background(), src))

	assert.Equal(t, 0, tool.segmentCalls)
	assert.Equal(t, 1, tr.calls)
}

func TestProcessSegmentFailure(t *testing.T) {
	cfg := newTestConfig(t)
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 2400, segmentErr: errors.New("ffmpeg failed")}
	tr := &fakeTranscriber{}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	err := p.Process(context.Background(), src)
	require.Error(t, err)
	assert.Equal(t, 0, tr.calls, "split failure must stop the item before any upload")
}

func TestProcessWritesSummary(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Summary.Enabled = true
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 600}
	tr := &fakeTranscriber{}
	summ := &fakeSummarizer{}
	p := New(cfg, tool, tr, summ, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.Process(context.Background(), src))

	assert.Equal(t, 1, summ.calls)
	data, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "talk"+cfg.Output.SummarySuffix))
	require.NoError(t, err)
	assert.Equal(t, "the summary\n", string(data))
}

func TestProcessSummaryFailureKeepsTranscript(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Summary.Enabled = true
	src := writeMedia(t, cfg, "talk.mp4")

	tool := &fakeTool{duration: 600}
	tr := &fakeTranscriber{}
	summ := &fakeSummarizer{err: errors.New("model unavailable")}
	p := New(cfg, tool, tr, summ, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.Process(context.Background(), src), "summary failure must not fail the item")

	data, err := os.ReadFile(transcriptPath(cfg, "talk"))
	require.NoError(t, err)
	assert.Equal(t, "text-1\n", string(data))

	sum, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "talk"+cfg.Output.SummarySuffix))
	require.NoError(t, err)
	assert.Contains(t, string(sum), "Summary generation failed")
}

func TestProcessAllQuotaStopsRun(t *testing.T) {
	cfg := newTestConfig(t)
	writeMedia(t, cfg, "a.mp4")
	writeMedia(t, cfg, "b.mp4")

	tool := &fakeTool{duration: 600}
	tr := &fakeTranscriber{fn: func(call int, path string) (string, error) {
		return "", fmt.Errorf("upload: %w", transcribe.ErrQuotaExhausted)
	}}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	err := p.ProcessAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, transcribe.ErrQuotaExhausted)
	assert.Equal(t, 1, tr.calls, "the run must stop at the first quota failure")
}

func TestProcessAllContinuesPastItemFailure(t *testing.T) {
	cfg := newTestConfig(t)
	a := writeMedia(t, cfg, "a.mp4")
	writeMedia(t, cfg, "b.mp4")

	// Make a older so it is processed first.
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(a, old, old))

	tool := &fakeTool{duration: 600}
	tr := &fakeTranscriber{fn: func(call int, path string) (string, error) {
		if call == 1 {
			return "", errors.New("bad response")
		}
		return "ok", nil
	}}
	p := New(cfg, tool, tr, nil, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.ProcessAll(context.Background()))

	assert.Equal(t, 2, tr.calls)
	_, err := os.Stat(transcriptPath(cfg, "a"))
	assert.True(t, os.IsNotExist(err), "failed item leaves no artifact")

	data, err := os.ReadFile(transcriptPath(cfg, "b"))
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(data))
}

func TestProcessAllEmptyInputDir(t *testing.T) {
	cfg := newTestConfig(t)
	tr := &fakeTranscriber{}
	p := New(cfg, &fakeTool{}, tr, nil, &fakeClock{}, logger.New("error"))

	require.NoError(t, p.ProcessAll(context.Background()))
	assert.Equal(t, 0, tr.calls)
}
