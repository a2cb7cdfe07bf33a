package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nithixh/youtube-summarizer/internal/chunker"
	"github.com/nithixh/youtube-summarizer/internal/downloader"
	"github.com/nithixh/youtube-summarizer/internal/logger"
	"github.com/nithixh/youtube-summarizer/internal/store"
	"github.com/nithixh/youtube-summarizer/internal/summarizer"
	"github.com/nithixh/youtube-summarizer/internal/transcriber"
	"github.com/nithixh/youtube-summarizer/internal/transcript"
)

// Pipeline orchestrates the five processing stages. It is the only writer
// of artifacts and history; every stage checks for a cached artifact
// before computing, so a repeated request for the same video resumes from
// whatever already exists.
type Pipeline struct {
	downloader  downloader.Downloader
	transcriber transcriber.Transcriber
	chunker     *chunker.Chunker
	builder     *summarizer.Builder
	artifacts   *store.Artifacts
	history     *store.History
	logger      logger.Logger
	guard       *runGuard
}

// New wires the pipeline. history may be nil when the history feature is
// disabled.
func New(
	dl downloader.Downloader,
	tr transcriber.Transcriber,
	ch *chunker.Chunker,
	builder *summarizer.Builder,
	artifacts *store.Artifacts,
	history *store.History,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		downloader:  dl,
		transcriber: tr,
		chunker:     ch,
		builder:     builder,
		artifacts:   artifacts,
		history:     history,
		logger:      log,
		guard:       newRunGuard(),
	}
}

// Run processes one video URL and returns its event stream. The channel is
// buffered for a full run's worth of events and closed after the terminal
// event, so an abandoned consumer never blocks the run.
func (p *Pipeline) Run(ctx context.Context, url string, cleanup bool) <-chan Event {
	events := make(chan Event, eventCapacity)

	// Reject before any side effect.
	if err := p.downloader.Validate(url); err != nil {
		p.terminate(events, err)
		return events
	}
	videoID, err := p.downloader.ExtractVideoID(url)
	if err != nil {
		p.terminate(events, err)
		return events
	}

	if !p.guard.acquire(videoID) {
		p.terminate(events, fmt.Errorf("video %s is already being processed", videoID))
		return events
	}

	go func() {
		defer close(events)
		defer p.guard.release(videoID)
		p.run(ctx, events, url, videoID, cleanup)
	}()

	return events
}

// RunLocal processes an already-downloaded audio file, entering the
// pipeline at the transcribing stage. The video id derives from the file
// name and its content hash, so re-dropping the same file resumes from
// cached artifacts.
func (p *Pipeline) RunLocal(ctx context.Context, audioPath string) <-chan Event {
	events := make(chan Event, eventCapacity)

	dl, err := p.localDownload(audioPath)
	if err != nil {
		p.terminate(events, err)
		return events
	}

	if !p.guard.acquire(dl.Metadata.ID) {
		p.terminate(events, fmt.Errorf("file %s is already being processed", audioPath))
		return events
	}

	go func() {
		defer close(events)
		defer p.guard.release(dl.Metadata.ID)

		if err := p.artifacts.Put(dl.Metadata.ID, store.StageDownload, dl); err != nil {
			p.fail(ctx, events, err)
			return
		}
		p.runFromTranscribe(ctx, events, run{
			audioPath: audioPath,
			download:  dl,
			videoID:   dl.Metadata.ID,
			sourceURL: "file://" + audioPath,
		})
	}()

	return events
}

func (p *Pipeline) run(ctx context.Context, events chan<- Event, url, videoID string, cleanup bool) {
	events <- Event{Stage: StageQueued, Status: StatusProcessing, Message: "Request queued", Progress: 0, VideoID: videoID}

	events <- Event{Stage: StageDownloading, Status: StatusProcessing, Message: "Downloading audio", Progress: 10, VideoID: videoID}
	dl, cached, err := p.stageDownload(ctx, url, videoID)
	if err != nil {
		p.fail(ctx, events, err)
		return
	}
	events <- Event{Stage: StageDownloading, Status: StatusCompleted, Message: stageMessage("Audio downloaded", cached), Progress: 25, VideoID: videoID}

	p.runFromTranscribe(ctx, events, run{
		audioPath: dl.AudioPath,
		download:  dl,
		videoID:   videoID,
		sourceURL: url,
		cleanup:   cleanup,
	})
}

// run carries the state shared by the stages after downloading.
type run struct {
	audioPath string
	download  downloader.Download
	videoID   string
	sourceURL string
	cleanup   bool
}

// runFromTranscribe executes the stages shared by URL and local-file runs.
func (p *Pipeline) runFromTranscribe(ctx context.Context, events chan<- Event, r run) {
	audioPath, dl, videoID, cleanup := r.audioPath, r.download, r.videoID, r.cleanup
	events <- Event{Stage: StageTranscribing, Status: StatusProcessing, Message: "Transcribing audio", Progress: 30, VideoID: videoID}
	tr, cached, err := p.stageTranscribe(ctx, audioPath, videoID)
	if err != nil {
		p.fail(ctx, events, err)
		return
	}
	events <- Event{
		Stage:    StageTranscribing,
		Status:   StatusCompleted,
		Message:  stageMessage(fmt.Sprintf("Transcribed %d segments", len(tr.Segments)), cached),
		Progress: 55,
		VideoID:  videoID,
	}

	events <- Event{Stage: StageChunking, Status: StatusProcessing, Message: "Detecting topic boundaries", Progress: 60, VideoID: videoID}
	chunks, cached, err := p.stageChunk(ctx, tr, videoID)
	if err != nil {
		p.fail(ctx, events, err)
		return
	}
	events <- Event{
		Stage:    StageChunking,
		Status:   StatusCompleted,
		Message:  stageMessage(fmt.Sprintf("Created %d chunks", chunks.TotalChunks), cached),
		Progress: 70,
		VideoID:  videoID,
	}

	events <- Event{Stage: StageSummarizing, Status: StatusProcessing, Message: "Summarizing chapters", Progress: 75, VideoID: videoID}
	summary, cached, err := p.stageSummarize(ctx, chunks, videoID)
	if err != nil {
		p.fail(ctx, events, err)
		return
	}
	events <- Event{
		Stage:    StageSummarizing,
		Status:   StatusCompleted,
		Message:  stageMessage(fmt.Sprintf("Summarized %d chapters", summary.TotalChapters), cached),
		Progress: 90,
		VideoID:  videoID,
	}

	p.finish(ctx, dl, summary, videoID, r.sourceURL, cleanup)

	events <- Event{Stage: StageCompleted, Status: StatusCompleted, Message: "Processing completed", Progress: 100, VideoID: videoID}
}

// stageDownload reuses the cached download when its audio file still
// exists with a matching checksum; anything else forces a fresh fetch.
func (p *Pipeline) stageDownload(ctx context.Context, url, videoID string) (downloader.Download, bool, error) {
	var dl downloader.Download
	if err := p.artifacts.Get(videoID, store.StageDownload, &dl); err == nil {
		if sum, err := downloader.ChecksumFile(dl.AudioPath); err == nil && sum == dl.Checksum {
			return dl, true, nil
		}
		p.logger.Warn(ctx, "cached audio for %s missing or altered, downloading again", videoID)
	}

	dl, err := p.downloader.Fetch(ctx, url)
	if err != nil {
		return downloader.Download{}, false, err
	}
	if err := p.artifacts.Put(videoID, store.StageDownload, dl); err != nil {
		return downloader.Download{}, false, err
	}
	return dl, false, nil
}

func (p *Pipeline) stageTranscribe(ctx context.Context, audioPath, videoID string) (transcript.Transcript, bool, error) {
	var tr transcript.Transcript
	if err := p.artifacts.Get(videoID, store.StageTranscript, &tr); err == nil {
		return tr, true, nil
	}

	tr, err := p.transcriber.Transcribe(ctx, audioPath, videoID)
	if err != nil {
		return transcript.Transcript{}, false, err
	}
	if err := p.artifacts.Put(videoID, store.StageTranscript, tr); err != nil {
		return transcript.Transcript{}, false, err
	}
	return tr, false, nil
}

func (p *Pipeline) stageChunk(ctx context.Context, tr transcript.Transcript, videoID string) (chunker.Result, bool, error) {
	var result chunker.Result
	if err := p.artifacts.Get(videoID, store.StageChunks, &result); err == nil {
		return result, true, nil
	}

	sentences, err := transcript.Sentences(tr.Segments)
	if err != nil {
		return chunker.Result{}, false, err
	}

	chunks := p.chunker.Chunk(ctx, sentences)
	result = chunker.Flatten(videoID, p.chunker.Method(), chunks)

	if err := p.artifacts.Put(videoID, store.StageChunks, result); err != nil {
		return chunker.Result{}, false, err
	}
	return result, false, nil
}

func (p *Pipeline) stageSummarize(ctx context.Context, chunks chunker.Result, videoID string) (summarizer.Summary, bool, error) {
	var summary summarizer.Summary
	if err := p.artifacts.Get(videoID, store.StageSummary, &summary); err == nil {
		return summary, true, nil
	}

	summary = p.builder.Build(ctx, chunks)
	if err := p.artifacts.Put(videoID, store.StageSummary, summary); err != nil {
		return summarizer.Summary{}, false, err
	}
	return summary, false, nil
}

// finish records history and, when asked, removes the audio file. Both are
// best-effort once the summary artifact is durably written.
func (p *Pipeline) finish(ctx context.Context, dl downloader.Download, summary summarizer.Summary, videoID, sourceURL string, cleanup bool) {
	if p.history != nil {
		record := store.Record{
			VideoID:       videoID,
			VideoTitle:    dl.Metadata.Title,
			SourceURL:     sourceURL,
			SummaryPath:   p.artifacts.Path(videoID, store.StageSummary),
			TotalChapters: summary.TotalChapters,
		}
		if err := p.history.Upsert(ctx, record); err != nil {
			p.logger.Warn(ctx, "record history for %s: %v", videoID, err)
		}
	}

	if cleanup {
		if err := p.downloader.Remove(dl.AudioPath); err != nil {
			p.logger.Warn(ctx, "cleanup audio for %s: %v", videoID, err)
		}
	}
}

func (p *Pipeline) fail(ctx context.Context, events chan<- Event, err error) {
	p.logger.Error(ctx, "pipeline run failed: %v", err)
	events <- Event{Stage: StageError, Status: StatusError, Message: err.Error(), Progress: 0}
}

// terminate emits a single error event and closes the stream without
// running anything.
func (p *Pipeline) terminate(events chan Event, err error) {
	events <- Event{Stage: StageError, Status: StatusError, Message: err.Error(), Progress: 0}
	close(events)
}

func (p *Pipeline) localDownload(audioPath string) (downloader.Download, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return downloader.Download{}, fmt.Errorf("audio file not found: %w", err)
	}

	checksum, err := downloader.ChecksumFile(audioPath)
	if err != nil {
		return downloader.Download{}, err
	}

	base := filepath.Base(audioPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	videoID := fmt.Sprintf("%s_%s", sanitizeID(name), checksum[:8])

	return downloader.Download{
		AudioPath: audioPath,
		Metadata: downloader.Metadata{
			ID:    videoID,
			Title: name,
		},
		FileSize: info.Size(),
		Checksum: checksum,
	}, nil
}

// sanitizeID keeps file-derived ids to the same alphabet as YouTube ids.
func sanitizeID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// stageMessage tags a stage completion message when the artifact came from
// cache rather than fresh computation.
func stageMessage(msg string, cached bool) string {
	if cached {
		return msg + " (cached)"
	}
	return msg
}
