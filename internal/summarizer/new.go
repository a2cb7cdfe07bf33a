package summarizer

import (
	"github.com/nithixh/youtube-summarizer/internal/config"
	"github.com/nithixh/youtube-summarizer/internal/logger"
)

// NewProvider creates the configured Summarizer implementation.
// Provider names are validated by the config package.
func NewProvider(cfg config.SummarizerConfig, log logger.Logger) Summarizer {
	switch cfg.Provider {
	case "gemini":
		return newGemini(cfg.GeminiAPIKeys, cfg.GeminiModel, log)
	case "openai":
		return newOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return Lead{}
	}
}
