package summarizer

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	client *openai.Client
	model  string
}

// newOpenAI creates a Summarizer backed by the OpenAI chat API.
func newOpenAI(apiKey, model string) Summarizer {
	return &implOpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (s *implOpenAI) Summarize(ctx context.Context, text string, sentenceCount int) (string, error) {
	prompt := fmt.Sprintf(extractivePrompt, sentenceCount, text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
