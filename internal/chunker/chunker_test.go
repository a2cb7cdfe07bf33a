package chunker

import (
	"context"
	"fmt"
	"testing"

	"github.com/nithixh/youtube-summarizer/internal/config"
	"github.com/nithixh/youtube-summarizer/internal/logger"
	"github.com/nithixh/youtube-summarizer/internal/transcript"
)

func newTestChunker(method string, min, max int, threshold float64) *Chunker {
	return New(config.ChunkingConfig{
		Method:              method,
		MinSentences:        min,
		MaxSentences:        max,
		SimilarityThreshold: threshold,
	}, logger.New("error"))
}

func makeSentences(texts ...string) []transcript.Sentence {
	sentences := make([]transcript.Sentence, len(texts))
	for i, text := range texts {
		start := float64(i * 5)
		sentences[i] = transcript.Sentence{
			Text:      text,
			Start:     start,
			End:       start + 5,
			Timestamp: transcript.FormatTimestamp(start),
		}
	}
	return sentences
}

func repeat(text string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = text
	}
	return out
}

func TestChunkShortStream(t *testing.T) {
	c := newTestChunker(MethodTFIDF, 3, 15, 0.3)
	sentences := makeSentences("First point here.", "Second point here.")

	chunks := c.Chunk(context.Background(), sentences)

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].ChunkID != 0 {
		t.Errorf("ChunkID = %d, want 0", chunks[0].ChunkID)
	}
	if len(chunks[0].Sentences) != 2 {
		t.Errorf("chunk holds %d sentences, want all 2", len(chunks[0].Sentences))
	}
}

func TestChunkMaxCap(t *testing.T) {
	// Identical sentences never drop below the threshold, so only the
	// hard cap can split them.
	c := newTestChunker(MethodTFIDF, 2, 3, 0.3)
	sentences := makeSentences(repeat("kubernetes cluster networking overview", 8)...)

	chunks := c.Chunk(context.Background(), sentences)

	if len(chunks) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3", len(chunks))
	}
	for i, ch := range chunks[:2] {
		if len(ch.Sentences) != 3 {
			t.Errorf("chunk %d holds %d sentences, want 3", i, len(ch.Sentences))
		}
	}
	if len(chunks[2].Sentences) != 2 {
		t.Errorf("trailing chunk holds %d sentences, want 2", len(chunks[2].Sentences))
	}
}

func TestChunkTopicBoundary(t *testing.T) {
	// Two blocks with disjoint vocabulary. The boundary similarity is 0,
	// so the split lands exactly where the topic changes.
	c := newTestChunker(MethodTFIDF, 2, 15, 0.3)
	texts := append(
		repeat("kubernetes cluster networking overview", 4),
		repeat("pasta sauce recipe tonight", 4)...,
	)
	sentences := makeSentences(texts...)

	chunks := c.Chunk(context.Background(), sentences)

	if len(chunks) != 2 {
		t.Fatalf("Chunk() returned %d chunks, want 2", len(chunks))
	}
	if len(chunks[0].Sentences) != 4 || len(chunks[1].Sentences) != 4 {
		t.Errorf("chunk sizes = %d/%d, want 4/4", len(chunks[0].Sentences), len(chunks[1].Sentences))
	}
	if chunks[1].Sentences[0].Text != "pasta sauce recipe tonight" {
		t.Errorf("second chunk starts with %q, want the new topic", chunks[1].Sentences[0].Text)
	}
}

func TestChunkSoftMinimum(t *testing.T) {
	// min=3 max=8 over 10+10 sentences of two topics. The hard cap fires
	// at 8 before the topic boundary; the boundary at sentence 10 is then
	// skipped because the current chunk is still below the minimum, so the
	// result is 8+8+4 rather than 10+10.
	c := newTestChunker(MethodTFIDF, 3, 8, 0.3)
	texts := append(
		repeat("kubernetes cluster networking overview", 10),
		repeat("pasta sauce recipe tonight", 10)...,
	)
	sentences := makeSentences(texts...)

	chunks := c.Chunk(context.Background(), sentences)

	if len(chunks) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3", len(chunks))
	}
	wantSizes := []int{8, 8, 4}
	for i, ch := range chunks {
		if len(ch.Sentences) != wantSizes[i] {
			t.Errorf("chunk %d holds %d sentences, want %d", i, len(ch.Sentences), wantSizes[i])
		}
		if ch.ChunkID != i {
			t.Errorf("chunk %d has ChunkID %d, want dense sequential IDs", i, ch.ChunkID)
		}
	}
	if chunks[1].Timestamp != "00:40" {
		t.Errorf("chunk 1 timestamp = %q, want the first sentence's 00:40", chunks[1].Timestamp)
	}
}

func TestChunkThresholdIsStrict(t *testing.T) {
	// Identical sentences score exactly 1.0; with the threshold set to
	// 1.0 nothing is strictly below it, so no similarity split happens.
	c := newTestChunker(MethodTFIDF, 2, 15, 1.0)
	sentences := makeSentences(repeat("kubernetes cluster networking overview", 6)...)

	chunks := c.Chunk(context.Background(), sentences)

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1 (similarity at the threshold must not split)", len(chunks))
	}
}

func TestChunkStopWordFallback(t *testing.T) {
	// Every sentence is pure stop words, so vectorization has nothing to
	// work with and fixed-size chunking takes over.
	c := newTestChunker(MethodTFIDF, 2, 3, 0.3)
	sentences := makeSentences(repeat("the and of to in", 7)...)

	chunks := c.Chunk(context.Background(), sentences)

	if len(chunks) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3 fixed-size groups", len(chunks))
	}
	if len(chunks[0].Sentences) != 3 || len(chunks[2].Sentences) != 1 {
		t.Errorf("chunk sizes = %d/%d/%d, want 3/3/1",
			len(chunks[0].Sentences), len(chunks[1].Sentences), len(chunks[2].Sentences))
	}
}

func TestChunkFixedMethod(t *testing.T) {
	c := newTestChunker(MethodFixed, 2, 4, 0.3)
	sentences := makeSentences(repeat("some distinct sentence text", 10)...)

	chunks := c.Chunk(context.Background(), sentences)

	if len(chunks) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3", len(chunks))
	}
	wantSizes := []int{4, 4, 2}
	for i, ch := range chunks {
		if len(ch.Sentences) != wantSizes[i] {
			t.Errorf("chunk %d holds %d sentences, want %d", i, len(ch.Sentences), wantSizes[i])
		}
	}
}

func TestChunkSpansCoverAllSentences(t *testing.T) {
	c := newTestChunker(MethodTFIDF, 3, 8, 0.3)
	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("distinct sentence number%d about various matters", i)
	}
	sentences := makeSentences(texts...)

	chunks := c.Chunk(context.Background(), sentences)

	total := 0
	prevEnd := 0.0
	for i, ch := range chunks {
		total += len(ch.Sentences)
		if ch.Start != ch.Sentences[0].Start {
			t.Errorf("chunk %d Start = %v, want first sentence start", i, ch.Start)
		}
		if ch.End != ch.Sentences[len(ch.Sentences)-1].End {
			t.Errorf("chunk %d End = %v, want last sentence end", i, ch.End)
		}
		if ch.Start < prevEnd {
			t.Errorf("chunk %d overlaps its predecessor", i)
		}
		prevEnd = ch.End
	}
	if total != len(sentences) {
		t.Errorf("chunks cover %d sentences, want %d", total, len(sentences))
	}
}
