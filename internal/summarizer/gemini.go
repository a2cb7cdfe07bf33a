package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nithixh/youtube-summarizer/internal/logger"
)

const extractivePrompt = `You are an extractive summarizer. From the text below, select the %d sentences that best represent its content. Copy the selected sentences VERBATIM, in their original order, joined into a single paragraph. Do not rewrite, shorten or add anything.

Text:
---
%s
---`

type implGemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	// mu guards currentKey; one instance is shared by concurrent runs.
	mu         sync.Mutex
	currentKey int
}

// newGemini creates a Summarizer that rotates through the supplied Gemini
// API keys on quota errors.
func newGemini(apiKeys []string, model string, log logger.Logger) Summarizer {
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (s *implGemini) Summarize(ctx context.Context, text string, sentenceCount int) (string, error) {
	prompt := fmt.Sprintf(extractivePrompt, sentenceCount, text)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIndex := s.takeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "gemini key %d rate limited, rotating", keyIndex+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return strings.TrimSpace(text.String()), nil
		}

		return "", fmt.Errorf("empty response from gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// takeKey returns the current key and its index under the lock.
func (s *implGemini) takeKey() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKeys[s.currentKey], s.currentKey
}

func (s *implGemini) rotateKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}
