package transcript

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTranscript means no usable sentences survived normalization.
// Chunking is impossible, so the run cannot continue.
var ErrEmptyTranscript = errors.New("transcript contains no sentences")

// Sentences normalizes raw transcriber segments into the ordered sentence
// stream consumed by the chunker. Segments whose trimmed text is empty are
// dropped; segments that would move backwards in time are skipped rather
// than trusted.
func Sentences(segments []Segment) ([]Sentence, error) {
	sentences := make([]Sentence, 0, len(segments))

	lastStart := -1.0
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if seg.Start < lastStart {
			continue
		}
		lastStart = seg.Start

		sentences = append(sentences, Sentence{
			Text:      text,
			Start:     seg.Start,
			End:       seg.End,
			Timestamp: FormatTimestamp(seg.Start),
		})
	}

	if len(sentences) == 0 {
		return nil, ErrEmptyTranscript
	}

	return sentences, nil
}

// FormatTimestamp renders seconds as zero-padded MM:SS, truncated to whole
// seconds.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
