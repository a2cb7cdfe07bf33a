package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nithixh/youtube-summarizer/internal/config"
)

// Stage names keying the per-video artifact files.
const (
	StageDownload   = "download"
	StageTranscript = "transcript"
	StageChunks     = "chunks"
	StageSummary    = "summary"
)

// ErrNotFound means no artifact exists for the requested video and stage.
var ErrNotFound = errors.New("artifact not found")

// Artifacts is a filesystem store of per-stage JSON artifacts keyed by
// video id. Writes go through a temp file and rename, so a crash mid-write
// never leaves a readable but truncated artifact.
type Artifacts struct {
	dirs map[string]string
}

// NewArtifacts maps each stage to its directory and creates the
// directories.
func NewArtifacts(paths config.PathsConfig) (*Artifacts, error) {
	dirs := map[string]string{
		StageDownload:   paths.Downloads,
		StageTranscript: paths.Transcripts,
		StageChunks:     paths.Transcripts,
		StageSummary:    paths.Summaries,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create artifact dir %s: %w", dir, err)
		}
	}
	return &Artifacts{dirs: dirs}, nil
}

// Path returns the artifact file path for a video and stage.
func (a *Artifacts) Path(videoID, stage string) string {
	return filepath.Join(a.dirs[stage], fmt.Sprintf("%s_%s.json", videoID, stage))
}

// Exists reports whether an artifact is present.
func (a *Artifacts) Exists(videoID, stage string) bool {
	_, err := os.Stat(a.Path(videoID, stage))
	return err == nil
}

// Put marshals v and commits it atomically.
func (a *Artifacts) Put(videoID, stage string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s artifact: %w", stage, err)
	}

	path := a.Path(videoID, stage)
	tmp, err := os.CreateTemp(a.dirs[stage], videoID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s artifact: %w", stage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit %s artifact: %w", stage, err)
	}
	return nil
}

// Get loads an artifact into the given value. Returns ErrNotFound when
// absent.
func (a *Artifacts) Get(videoID, stage string, into any) error {
	data, err := os.ReadFile(a.Path(videoID, stage))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, videoID, stage)
		}
		return fmt.Errorf("read %s artifact: %w", stage, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse %s artifact: %w", stage, err)
	}
	return nil
}

// Delete removes an artifact if it exists.
func (a *Artifacts) Delete(videoID, stage string) error {
	if err := os.Remove(a.Path(videoID, stage)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s artifact: %w", stage, err)
	}
	return nil
}
