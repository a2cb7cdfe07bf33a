package summarizer

import "context"

// Summarizer reduces a block of text to sentenceCount representative
// sentences. Implementations may fail; callers must treat failure as a
// quality degradation, never as a fatal error.
type Summarizer interface {
	Summarize(ctx context.Context, text string, sentenceCount int) (string, error)
}
