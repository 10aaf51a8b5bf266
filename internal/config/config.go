package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultTranscribePrompt = "You are an expert transcriptionist. Your task is to transcribe the following media with high accuracy and timestamps for every distinct segment of speech."
	defaultSummaryPrompt    = "Please provide a concise summary of the following transcript:\n%s"
)

type Config struct {
	Engine    string          `yaml:"engine"`
	Paths     PathsConfig     `yaml:"paths"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	Polling   PollingConfig   `yaml:"polling"`
	Retry     RetryConfig     `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Assembly  AssemblyConfig  `yaml:"assembly"`
	Summary   SummaryConfig   `yaml:"summary"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type ChunkingConfig struct {
	ThresholdMinutes int `yaml:"threshold_minutes"`
	ChunkMinutes     int `yaml:"chunk_minutes"`
}

type GeminiConfig struct {
	Model                 string `yaml:"model"`
	Prompt                string `yaml:"prompt"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

type WhisperConfig struct {
	Model          string `yaml:"model"`
	Language       string `yaml:"language"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	Preprocess     bool   `yaml:"preprocess"`
}

type PollingConfig struct {
	InitialWaitRatio           float64 `yaml:"initial_wait_ratio"`
	MinInitialWaitSeconds      int     `yaml:"min_initial_wait_seconds"`
	UnknownDurationWaitSeconds int     `yaml:"unknown_duration_wait_seconds"`
	IntervalSeconds            int     `yaml:"interval_seconds"`
	MaxWaitMinutes             int     `yaml:"max_wait_minutes"`
}

type RetryConfig struct {
	Attempts     int `yaml:"attempts"`
	DelaySeconds int `yaml:"delay_seconds"`
}

type RateLimitConfig struct {
	ChunkDelaySeconds int `yaml:"chunk_delay_seconds"`
}

type AssemblyConfig struct {
	// OnChunkFailure selects what happens when some chunks fail:
	// "drop" keeps the successful chunks, "fail" fails the whole item.
	OnChunkFailure string `yaml:"on_chunk_failure"`
}

type SummaryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Prompt  string `yaml:"prompt"`
	Docx    bool   `yaml:"docx"`
}

type OutputConfig struct {
	TranscriptSuffix string `yaml:"transcript_suffix"`
	SummarySuffix    string `yaml:"summary_suffix"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads the YAML config file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	switch c.Engine {
	case "":
		c.Engine = "gemini"
	case "gemini", "whisper":
	default:
		return fmt.Errorf("engine must be 'gemini' or 'whisper', got %q", c.Engine)
	}

	switch c.Assembly.OnChunkFailure {
	case "":
		c.Assembly.OnChunkFailure = "drop"
	case "drop", "fail":
	default:
		return fmt.Errorf("assembly.on_chunk_failure must be 'drop' or 'fail', got %q", c.Assembly.OnChunkFailure)
	}

	if c.Chunking.ThresholdMinutes < 0 || c.Chunking.ChunkMinutes < 0 {
		return fmt.Errorf("chunking durations must not be negative")
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Chunking.ThresholdMinutes == 0 {
		c.Chunking.ThresholdMinutes = 30
	}
	if c.Chunking.ChunkMinutes == 0 {
		c.Chunking.ChunkMinutes = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-pro"
	}
	if c.Gemini.Prompt == "" {
		c.Gemini.Prompt = defaultTranscribePrompt
	}
	if c.Gemini.RequestTimeoutSeconds == 0 {
		c.Gemini.RequestTimeoutSeconds = 1000
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "whisper-1"
	}
	if c.Whisper.MaxUploadBytes == 0 {
		c.Whisper.MaxUploadBytes = 25 * 1024 * 1024
	}
	if c.Polling.InitialWaitRatio == 0 {
		c.Polling.InitialWaitRatio = 0.10
	}
	if c.Polling.MinInitialWaitSeconds == 0 {
		c.Polling.MinInitialWaitSeconds = 30
	}
	if c.Polling.UnknownDurationWaitSeconds == 0 {
		c.Polling.UnknownDurationWaitSeconds = 360
	}
	if c.Polling.IntervalSeconds == 0 {
		c.Polling.IntervalSeconds = 60
	}
	if c.Polling.MaxWaitMinutes == 0 {
		c.Polling.MaxWaitMinutes = 60
	}
	if c.Retry.Attempts == 0 {
		c.Retry.Attempts = 2
	}
	if c.Retry.DelaySeconds == 0 {
		c.Retry.DelaySeconds = 1
	}
	if c.RateLimit.ChunkDelaySeconds == 0 {
		c.RateLimit.ChunkDelaySeconds = 10
	}
	if c.Summary.Prompt == "" {
		c.Summary.Prompt = defaultSummaryPrompt
	}
	if c.Output.TranscriptSuffix == "" {
		c.Output.TranscriptSuffix = ".txt"
	}
	if c.Output.SummarySuffix == "" {
		c.Output.SummarySuffix = "_summary.txt"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
