package server

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nithixh/youtube-summarizer/internal/summarizer"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// summaryToDocx renders a summary as a styled docx file.
func summaryToDocx(s summarizer.Summary, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), "YouTube Video Summary", true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Video ID: %s (%d chapters)", s.VideoID, s.TotalChapters), false, fontSize)
	doc.AddParagraph("")

	for _, ch := range s.Chapters {
		heading := fmt.Sprintf("Chapter %d: %s", ch.ChapterID+1, ch.Title)
		addStyledRun(doc.AddParagraph(""), heading, true, 14)
		addStyledRun(doc.AddParagraph(""), "["+ch.Timestamp+"]", false, fontSize)
		addStyledRun(doc.AddParagraph(""), ch.Summary, false, fontSize)
		doc.AddParagraph("")
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
