package summarizer

import (
	"context"
	"strings"
)

// Lead is the deterministic extractive baseline: the first N
// period-delimited sentences of the text. It is also the fallback applied
// whenever another provider fails or returns nothing.
type Lead struct{}

func (Lead) Summarize(ctx context.Context, text string, sentenceCount int) (string, error) {
	return leadSentences(text, sentenceCount), nil
}

func leadSentences(text string, n int) string {
	sentences := strings.Split(text, ". ")
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	summary := strings.Join(sentences, ". ")
	summary = strings.TrimSuffix(summary, ".")
	if summary == "" {
		return ""
	}
	return summary + "."
}
