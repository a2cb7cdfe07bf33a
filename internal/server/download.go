package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nithixh/youtube-summarizer/internal/store"
	"github.com/nithixh/youtube-summarizer/internal/summarizer"
)

// handleDownload serves the summary as a file in json, txt or docx form.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("video_id")
	format := r.PathValue("format")

	var summary summarizer.Summary
	if err := s.artifacts.Get(videoID, store.StageSummary, &summary); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "summary not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	switch format {
	case "json":
		serveAttachment(w, r, s.artifacts.Path(videoID, store.StageSummary),
			"application/json", videoID+"_summary.json")

	case "txt":
		content := summarizer.RenderText(summary)
		path := filepath.Join(s.cfg.Paths.Summaries, videoID+"_summary.txt")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		serveAttachment(w, r, path, "text/plain", videoID+"_summary.txt")

	case "docx":
		path := filepath.Join(s.cfg.Paths.Summaries, videoID+"_summary.docx")
		if err := summaryToDocx(summary, path); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		serveAttachment(w, r, path,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			videoID+"_summary.docx")

	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid format: " + format})
	}
}

func serveAttachment(w http.ResponseWriter, r *http.Request, path, mimeType, downloadName string) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	http.ServeFile(w, r, path)
}
