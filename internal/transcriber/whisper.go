package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nithixh/youtube-summarizer/internal/config"
	"github.com/nithixh/youtube-summarizer/internal/logger"
	"github.com/nithixh/youtube-summarizer/internal/transcript"
	"github.com/nithixh/youtube-summarizer/pkg/executor"
)

// ErrTranscription wraps any speech-to-text failure.
var ErrTranscription = errors.New("transcription failed")

// whisperOutput mirrors the JSON file written by whisper.cpp with -oj.
// Offsets are integer milliseconds.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// implWhisper runs the whisper.cpp binary. One instance is constructed at
// bootstrap holding the model path and passed to every consumer; the model
// itself lives inside the child process.
type implWhisper struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a whisper.cpp backed Transcriber.
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implWhisper{
		binaryPath: cfg.BinaryPath,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
		threads:    cfg.Threads,
		executor:   exec,
		logger:     log,
	}
}

// Transcribe runs whisper.cpp over the audio file and parses its JSON
// output into a Transcript.
func (t *implWhisper) Transcribe(ctx context.Context, audioPath, videoID string) (transcript.Transcript, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return transcript.Transcript{}, fmt.Errorf("%w: audio file not found: %s", ErrTranscription, audioPath)
	}

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", t.modelPath,
		"-f", audioPath,
		"-oj",
		"-l", t.language,
		"-t", strconv.Itoa(t.threads),
		"--output-file", outputPrefix,
	}

	t.logger.Info(ctx, "transcribing %s with %d threads", audioPath, t.threads)
	if _, err := t.executor.Execute(ctx, t.binaryPath, args...); err != nil {
		return transcript.Transcript{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	jsonPath := outputPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("%w: read whisper output: %v", ErrTranscription, err)
	}
	defer os.Remove(jsonPath)

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return transcript.Transcript{}, fmt.Errorf("%w: parse whisper output: %v", ErrTranscription, err)
	}

	return t.buildTranscript(videoID, out), nil
}

func (t *implWhisper) buildTranscript(videoID string, out whisperOutput) transcript.Transcript {
	thousand := decimal.NewFromInt(1000)

	segments := make([]transcript.Segment, 0, len(out.Transcription))
	fullText := make([]string, 0, len(out.Transcription))
	var duration float64

	for i, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		start := decimal.NewFromInt(seg.Offsets.From).Div(thousand)
		end := decimal.NewFromInt(seg.Offsets.To).Div(thousand)

		segments = append(segments, transcript.Segment{
			ID:    i,
			Start: start.InexactFloat64(),
			End:   end.InexactFloat64(),
			Text:  text,
		})
		if text != "" {
			fullText = append(fullText, text)
		}
		if e := end.InexactFloat64(); e > duration {
			duration = e
		}
	}

	language := out.Result.Language
	if language == "" {
		language = t.language
	}

	return transcript.Transcript{
		VideoID:  videoID,
		Language: language,
		Duration: duration,
		FullText: strings.Join(fullText, " "),
		Segments: segments,
	}
}
