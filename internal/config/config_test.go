package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
					Language:   "en",
				},
			},
			wantErr: false,
		},
		{
			name: "missing model path",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "./whisper",
					Language:   "en",
				},
			},
			wantErr: true,
		},
		{
			name: "missing binary path",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath: "models/test.bin",
					Language:  "en",
				},
			},
			wantErr: true,
		},
		{
			name: "min sentences above max",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Chunking: ChunkingConfig{
					MinSentences: 10,
					MaxSentences: 5,
				},
			},
			wantErr: true,
		},
		{
			name: "gemini provider without keys",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Summarizer: SummarizerConfig{
					Provider: "gemini",
				},
			},
			wantErr: true,
		},
		{
			name: "openai provider without key",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Summarizer: SummarizerConfig{
					Provider: "openai",
				},
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Summarizer: SummarizerConfig{
					Provider: "magic",
				},
			},
			wantErr: true,
		},
		{
			name: "watcher enabled without inbox",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Watcher: WatcherConfig{
					Enabled: true,
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/test.bin",
			BinaryPath: "./whisper",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Port = %v, want 5000", cfg.Server.Port)
	}
	if cfg.Chunking.Method != "tfidf" {
		t.Errorf("Method = %v, want tfidf", cfg.Chunking.Method)
	}
	if cfg.Chunking.MinSentences != 3 || cfg.Chunking.MaxSentences != 15 {
		t.Errorf("sentence bounds = %v/%v, want 3/15", cfg.Chunking.MinSentences, cfg.Chunking.MaxSentences)
	}
	if cfg.Chunking.SimilarityThreshold != 0.3 {
		t.Errorf("SimilarityThreshold = %v, want 0.3", cfg.Chunking.SimilarityThreshold)
	}
	if cfg.Summarizer.Provider != "lead" {
		t.Errorf("Provider = %v, want lead", cfg.Summarizer.Provider)
	}
	if cfg.Limits.MaxVideoMinutes != 120 {
		t.Errorf("MaxVideoMinutes = %v, want 120", cfg.Limits.MaxVideoMinutes)
	}
	if len(cfg.Limits.AllowedDomains) != 2 {
		t.Errorf("AllowedDomains = %v, want youtube.com and youtu.be", cfg.Limits.AllowedDomains)
	}
	if cfg.Paths.Downloads != "data/downloads" {
		t.Errorf("Downloads = %v, want data/downloads", cfg.Paths.Downloads)
	}
}

func TestValidateNormalizesDomains(t *testing.T) {
	cfg := Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/test.bin",
			BinaryPath: "./whisper",
		},
		Limits: LimitsConfig{
			AllowedDomains: []string{" YouTube.com ", "Youtu.be"},
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Limits.AllowedDomains[0] != "youtube.com" || cfg.Limits.AllowedDomains[1] != "youtu.be" {
		t.Errorf("AllowedDomains = %v, want lowercase trimmed", cfg.Limits.AllowedDomains)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"

chunking:
  method: "tfidf"
  min_sentences: 2
  max_sentences: 8
  similarity_threshold: 0.25

summarizer:
  provider: "lead"
  summary_sentences: 2

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}

	if cfg.Chunking.MaxSentences != 8 {
		t.Errorf("MaxSentences = %v, want 8", cfg.Chunking.MaxSentences)
	}

	if cfg.Summarizer.SummarySentences != 2 {
		t.Errorf("SummarySentences = %v, want 2", cfg.Summarizer.SummarySentences)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
