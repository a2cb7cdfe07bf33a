package transcriber

import (
	"context"

	"github.com/nithixh/youtube-summarizer/internal/transcript"
)

// Transcriber produces a timestamped transcript from an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, videoID string) (transcript.Transcript, error)
}
