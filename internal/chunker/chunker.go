package chunker

import (
	"context"

	"github.com/nithixh/youtube-summarizer/internal/config"
	"github.com/nithixh/youtube-summarizer/internal/logger"
	"github.com/nithixh/youtube-summarizer/internal/transcript"
)

// MethodTFIDF segments on lexical similarity between adjacent sentences;
// MethodFixed cuts consecutive groups of max_sentences.
const (
	MethodTFIDF = "tfidf"
	MethodFixed = "fixed"
)

// Chunker partitions a sentence stream into topic-coherent chunks. It is a
// pure function over its input and owns no persistent state.
type Chunker struct {
	method       string
	minSentences int
	maxSentences int
	threshold    float64
	logger       logger.Logger
}

// New creates a Chunker from the chunking config section.
func New(cfg config.ChunkingConfig, log logger.Logger) *Chunker {
	return &Chunker{
		method:       cfg.Method,
		minSentences: cfg.MinSentences,
		maxSentences: cfg.MaxSentences,
		threshold:    cfg.SimilarityThreshold,
		logger:       log,
	}
}

// Method reports which chunking method this Chunker applies.
func (c *Chunker) Method() string {
	return c.method
}

// Chunk segments sentences into chunks. It never fails: when sentence
// vectorization is impossible (all stop words) or the configured method is
// not tfidf, it falls back to fixed-size chunking.
func (c *Chunker) Chunk(ctx context.Context, sentences []transcript.Sentence) []Chunk {
	if c.method != MethodTFIDF {
		return c.chunkFixed(sentences)
	}
	return c.chunkTFIDF(ctx, sentences)
}

func (c *Chunker) chunkTFIDF(ctx context.Context, sentences []transcript.Sentence) []Chunk {
	// Degenerate input: everything fits one chunk, size bounds waived.
	if len(sentences) < c.minSentences {
		return []Chunk{newChunk(0, sentences)}
	}

	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}

	v, err := fitVectorizer(texts, 100)
	if err != nil {
		c.logger.Warn(ctx, "sentence vectorization failed (%v), falling back to fixed-size chunks", err)
		return c.chunkFixed(sentences)
	}

	vectors := make([][]float64, len(texts))
	for i, t := range texts {
		vectors[i] = v.transform(t)
	}

	// Similarity of each sentence to its predecessor. A low score signals
	// a topic boundary candidate.
	similarities := make([]float64, len(sentences)-1)
	for i := 0; i < len(sentences)-1; i++ {
		similarities[i] = cosine(vectors[i], vectors[i+1])
	}

	var chunks []Chunk
	current := []transcript.Sentence{sentences[0]}
	chunkID := 0

	for i := 1; i < len(sentences); i++ {
		// The minimum is a soft floor for splitting only; the maximum is a
		// hard cap. A similarity exactly at the threshold does not split.
		split := (similarities[i-1] < c.threshold && len(current) >= c.minSentences) ||
			len(current) >= c.maxSentences

		if split {
			chunks = append(chunks, newChunk(chunkID, current))
			current = []transcript.Sentence{sentences[i]}
			chunkID++
		} else {
			current = append(current, sentences[i])
		}
	}

	// The trailing chunk is emitted even when below the minimum.
	chunks = append(chunks, newChunk(chunkID, current))

	c.logger.Debug(ctx, "created %d chunks from %d sentences (tfidf)", len(chunks), len(sentences))
	return chunks
}

// chunkFixed partitions sentences into consecutive groups of exactly
// maxSentences; the last group may be smaller.
func (c *Chunker) chunkFixed(sentences []transcript.Sentence) []Chunk {
	var chunks []Chunk
	for i := 0; i < len(sentences); i += c.maxSentences {
		end := i + c.maxSentences
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, newChunk(len(chunks), sentences[i:end]))
	}
	return chunks
}

func newChunk(id int, sentences []transcript.Sentence) Chunk {
	return Chunk{
		ChunkID:   id,
		Sentences: sentences,
		Start:     sentences[0].Start,
		End:       sentences[len(sentences)-1].End,
		Timestamp: sentences[0].Timestamp,
	}
}
