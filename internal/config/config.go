package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Paths      PathsConfig      `yaml:"paths"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Limits     LimitsConfig     `yaml:"limits"`
	Download   DownloadConfig   `yaml:"download"`
	Database   DatabaseConfig   `yaml:"database"`
	Watcher    WatcherConfig    `yaml:"watcher"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type PathsConfig struct {
	Data        string `yaml:"data"`
	Downloads   string `yaml:"downloads"`
	Transcripts string `yaml:"transcripts"`
	Summaries   string `yaml:"summaries"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type ChunkingConfig struct {
	Method              string  `yaml:"method"`
	MinSentences        int     `yaml:"min_sentences"`
	MaxSentences        int     `yaml:"max_sentences"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

type SummarizerConfig struct {
	Provider         string   `yaml:"provider"`
	SummarySentences int      `yaml:"summary_sentences"`
	GeminiAPIKeys    []string `yaml:"gemini_api_keys"`
	GeminiModel      string   `yaml:"gemini_model"`
	OpenAIAPIKey     string   `yaml:"openai_api_key"`
	OpenAIModel      string   `yaml:"openai_model"`
}

type LimitsConfig struct {
	MaxVideoMinutes int      `yaml:"max_video_minutes"`
	AllowedDomains  []string `yaml:"allowed_domains"`
}

type DownloadConfig struct {
	Format       string `yaml:"format"`
	AudioQuality int    `yaml:"audio_quality"`
}

type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type WatcherConfig struct {
	Enabled       bool   `yaml:"enabled"`
	InboxDir      string `yaml:"inbox_dir"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file and validates it.
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

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Chunking.MinSentences < 0 || c.Chunking.MaxSentences < 0 {
		return fmt.Errorf("chunking sentence bounds must not be negative")
	}
	if c.Watcher.Enabled && c.Watcher.InboxDir == "" {
		return fmt.Errorf("watcher.inbox_dir is required when watcher is enabled")
	}

	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Paths.Data == "" {
		c.Paths.Data = "data"
	}
	if c.Paths.Downloads == "" {
		c.Paths.Downloads = c.Paths.Data + "/downloads"
	}
	if c.Paths.Transcripts == "" {
		c.Paths.Transcripts = c.Paths.Data + "/transcripts"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = c.Paths.Data + "/summaries"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Chunking.Method == "" {
		c.Chunking.Method = "tfidf"
	}
	if c.Chunking.MinSentences == 0 {
		c.Chunking.MinSentences = 3
	}
	if c.Chunking.MaxSentences == 0 {
		c.Chunking.MaxSentences = 15
	}
	if c.Chunking.SimilarityThreshold == 0 {
		c.Chunking.SimilarityThreshold = 0.3
	}
	if c.Chunking.MinSentences > c.Chunking.MaxSentences {
		return fmt.Errorf("chunking.min_sentences must not exceed chunking.max_sentences")
	}
	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = "lead"
	}
	if c.Summarizer.SummarySentences == 0 {
		c.Summarizer.SummarySentences = 3
	}
	if c.Summarizer.GeminiModel == "" {
		c.Summarizer.GeminiModel = "gemini-2.5-flash"
	}
	if c.Summarizer.OpenAIModel == "" {
		c.Summarizer.OpenAIModel = "gpt-4o-mini"
	}
	if c.Limits.MaxVideoMinutes == 0 {
		c.Limits.MaxVideoMinutes = 120
	}
	if len(c.Limits.AllowedDomains) == 0 {
		c.Limits.AllowedDomains = []string{"youtube.com", "youtu.be"}
	}
	if c.Download.Format == "" {
		c.Download.Format = "mp3"
	}
	if c.Download.AudioQuality == 0 {
		c.Download.AudioQuality = 192
	}
	if c.Database.Path == "" {
		c.Database.Path = c.Paths.Data + "/summaries.db"
	}
	if c.Watcher.MaxConcurrent == 0 {
		c.Watcher.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	switch c.Summarizer.Provider {
	case "gemini":
		if len(c.Summarizer.GeminiAPIKeys) == 0 {
			return fmt.Errorf("summarizer.gemini_api_keys is required for the gemini provider")
		}
	case "openai":
		if c.Summarizer.OpenAIAPIKey == "" {
			return fmt.Errorf("summarizer.openai_api_key is required for the openai provider")
		}
	case "lead":
	default:
		return fmt.Errorf("unknown summarizer provider: %s", c.Summarizer.Provider)
	}

	for i, d := range c.Limits.AllowedDomains {
		c.Limits.AllowedDomains[i] = strings.ToLower(strings.TrimSpace(d))
	}

	return nil
}
