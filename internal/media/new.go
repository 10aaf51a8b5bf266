package media

import (
	"media-scribe/internal/logger"
	"media-scribe/pkg/executor"
)

type implTool struct {
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Tool backed by the ffmpeg and ffprobe binaries on PATH.
func New(exec executor.Executor, log logger.Logger) Tool {
	return &implTool{
		executor: exec,
		logger:   log,
	}
}
