package summarizer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/nithixh/youtube-summarizer/internal/chunker"
	"github.com/nithixh/youtube-summarizer/internal/logger"
)

// Chapter is the summarized, titled form of one chunk. Chapters map 1:1 to
// chunks; they are never merged or split.
type Chapter struct {
	ChapterID     int     `json:"chapter_id"`
	Title         string  `json:"title"`
	Timestamp     string  `json:"timestamp"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	Summary       string  `json:"summary"`
	OriginalText  string  `json:"original_text"`
	SentenceCount int     `json:"sentence_count"`
}

// Summary is the persisted output of the summarizing stage.
type Summary struct {
	VideoID          string    `json:"video_id"`
	TotalChapters    int       `json:"total_chapters"`
	Chapters         []Chapter `json:"chapters"`
	Method           string    `json:"method"`
	SummarySentences int       `json:"summary_sentences"`
}

// Builder turns chunks into chapters using an external Summarizer. A
// summarizer failure degrades to the lead-sentence fallback; it never
// aborts the run.
type Builder struct {
	provider         Summarizer
	providerName     string
	summarySentences int
	logger           logger.Logger
}

// NewBuilder creates a chapter Builder around the given provider.
func NewBuilder(provider Summarizer, providerName string, summarySentences int, log logger.Logger) *Builder {
	return &Builder{
		provider:         provider,
		providerName:     providerName,
		summarySentences: summarySentences,
		logger:           log,
	}
}

// Build summarizes every chunk in order and assembles the Summary artifact.
func (b *Builder) Build(ctx context.Context, chunks chunker.Result) Summary {
	chapters := make([]Chapter, 0, len(chunks.Chunks))

	for _, c := range chunks.Chunks {
		summary, err := b.provider.Summarize(ctx, c.Text, b.summarySentences)
		if err != nil || strings.TrimSpace(summary) == "" {
			if err != nil {
				b.logger.Warn(ctx, "summarizer failed for chunk %d: %v, using lead sentences", c.ChunkID, err)
			}
			summary = leadSentences(c.Text, b.summarySentences)
		}

		chapters = append(chapters, Chapter{
			ChapterID:     c.ChunkID,
			Title:         chapterTitle(c.Text, c.ChunkID),
			Timestamp:     c.Timestamp,
			Start:         c.Start,
			End:           c.End,
			Summary:       summary,
			OriginalText:  c.Text,
			SentenceCount: c.SentenceCount,
		})
	}

	return Summary{
		VideoID:          chunks.VideoID,
		TotalChapters:    len(chapters),
		Chapters:         chapters,
		Method:           b.providerName,
		SummarySentences: b.summarySentences,
	}
}

// chapterTitle derives a title from the first words of the chunk text:
// the first five words title-cased, trailing punctuation stripped, cut to
// 50 characters with an ellipsis when longer. Texts with fewer than five
// words get a numbered default.
func chapterTitle(text string, chunkID int) string {
	words := strings.Fields(text)
	if len(words) > 10 {
		words = words[:10]
	}
	if len(words) < 5 {
		return fmt.Sprintf("Chapter %d", chunkID+1)
	}

	titleWords := make([]string, 5)
	for i, w := range words[:5] {
		titleWords[i] = capitalize(w)
	}
	title := strings.Join(titleWords, " ")
	title = strings.TrimRight(title, ".,;:")

	if runes := []rune(title); len(runes) > 50 {
		title = string(runes[:47]) + "..."
	}
	return title
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return w
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// RenderText produces the plain-text rendering of a summary, used for the
// txt download format.
func RenderText(s Summary) string {
	divider := strings.Repeat("=", 60)
	var b strings.Builder

	b.WriteString(divider + "\n")
	b.WriteString("YouTube Video Summary\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Video ID: %s\n", s.VideoID)
	fmt.Fprintf(&b, "Total Chapters: %d\n", s.TotalChapters)
	b.WriteString(divider + "\n\n")

	for _, ch := range s.Chapters {
		fmt.Fprintf(&b, "Chapter %d: %s\n", ch.ChapterID+1, ch.Title)
		fmt.Fprintf(&b, "Timestamp: [%s]\n", ch.Timestamp)
		fmt.Fprintf(&b, "Summary: %s\n", ch.Summary)
		b.WriteString(strings.Repeat("-", 60) + "\n\n")
	}

	return b.String()
}
