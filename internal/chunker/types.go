package chunker

import (
	"strings"

	"github.com/nithixh/youtube-summarizer/internal/transcript"
)

// Chunk is a contiguous run of sentences judged to share one topic.
// Start and Timestamp come from the first sentence, End from the last.
type Chunk struct {
	ChunkID   int                   `json:"chunk_id"`
	Sentences []transcript.Sentence `json:"sentences"`
	Start     float64               `json:"start"`
	End       float64               `json:"end"`
	Timestamp string                `json:"timestamp"`
}

// Text joins the chunk's sentences with single spaces.
func (c Chunk) Text() string {
	parts := make([]string, len(c.Sentences))
	for i, s := range c.Sentences {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// FlatChunk is the persisted artifact form of a chunk.
type FlatChunk struct {
	ChunkID       int     `json:"chunk_id"`
	Text          string  `json:"text"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	Timestamp     string  `json:"timestamp"`
	SentenceCount int     `json:"sentence_count"`
}

// Result is the persisted output of the chunking stage.
type Result struct {
	VideoID     string      `json:"video_id"`
	TotalChunks int         `json:"total_chunks"`
	Chunks      []FlatChunk `json:"chunks"`
	Method      string      `json:"method"`
}

// Flatten converts chunks to their artifact form.
func Flatten(videoID, method string, chunks []Chunk) Result {
	flat := make([]FlatChunk, len(chunks))
	for i, c := range chunks {
		flat[i] = FlatChunk{
			ChunkID:       c.ChunkID,
			Text:          c.Text(),
			Start:         c.Start,
			End:           c.End,
			Timestamp:     c.Timestamp,
			SentenceCount: len(c.Sentences),
		}
	}
	return Result{
		VideoID:     videoID,
		TotalChunks: len(flat),
		Chunks:      flat,
		Method:      method,
	}
}
