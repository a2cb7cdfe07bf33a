package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nithixh/youtube-summarizer/internal/config"
	"github.com/nithixh/youtube-summarizer/internal/logger"
	"github.com/nithixh/youtube-summarizer/internal/pipeline"
	"github.com/nithixh/youtube-summarizer/internal/store"
	"github.com/nithixh/youtube-summarizer/internal/summarizer"
)

// Server is the presentation boundary: it re-emits pipeline events as
// server-sent events and serves stored results.
type Server struct {
	pipeline  *pipeline.Pipeline
	artifacts *store.Artifacts
	history   *store.History
	cfg       *config.Config
	logger    logger.Logger
}

// New creates the HTTP boundary. history may be nil when disabled.
func New(p *pipeline.Pipeline, artifacts *store.Artifacts, history *store.History, cfg *config.Config, log logger.Logger) *Server {
	return &Server{
		pipeline:  p,
		artifacts: artifacts,
		history:   history,
		cfg:       cfg,
		logger:    log,
	}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("GET /result/{video_id}", s.handleResult)
	mux.HandleFunc("GET /download/{video_id}/{format}", s.handleDownload)
	mux.HandleFunc("GET /history", s.handleHistory)
	return mux
}

type summarizeRequest struct {
	URL     string `json:"url"`
	Cleanup *bool  `json:"cleanup"`
}

// handleSummarize starts a pipeline run and streams its events.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url is required"})
		return
	}

	cleanup := true
	if req.Cleanup != nil {
		cleanup = *req.Cleanup
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	for event := range s.pipeline.Run(r.Context(), req.URL, cleanup) {
		data, err := json.Marshal(event)
		if err != nil {
			s.logger.Error(r.Context(), "marshal event: %v", err)
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}

// handleResult returns the summary artifact for a video.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("video_id")

	var summary summarizer.Summary
	if err := s.artifacts.Get(videoID, store.StageSummary, &summary); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "summary not found for video " + videoID})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleHistory lists the most recent runs. Returns 404 when the history
// feature is disabled.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history feature is disabled"})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []store.Record{}
	}

	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
