package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nithixh/youtube-summarizer/internal/config"
)

func newTestArtifacts(t *testing.T) *Artifacts {
	t.Helper()
	dir := t.TempDir()
	a, err := NewArtifacts(config.PathsConfig{
		Data:        dir,
		Downloads:   filepath.Join(dir, "downloads"),
		Transcripts: filepath.Join(dir, "transcripts"),
		Summaries:   filepath.Join(dir, "summaries"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

type testArtifact struct {
	VideoID string `json:"video_id"`
	Value   int    `json:"value"`
}

func TestArtifactsRoundtrip(t *testing.T) {
	a := newTestArtifacts(t)

	in := testArtifact{VideoID: "dQw4w9WgXcQ", Value: 42}
	if err := a.Put("dQw4w9WgXcQ", StageChunks, in); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if !a.Exists("dQw4w9WgXcQ", StageChunks) {
		t.Error("Exists() = false after Put")
	}

	var out testArtifact
	if err := a.Get("dQw4w9WgXcQ", StageChunks, &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out != in {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}
}

func TestArtifactsGetMissing(t *testing.T) {
	a := newTestArtifacts(t)

	var out testArtifact
	err := a.Get("missing12345", StageSummary, &out)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestArtifactsOverwrite(t *testing.T) {
	a := newTestArtifacts(t)

	if err := a.Put("abc123def45", StageSummary, testArtifact{Value: 1}); err != nil {
		t.Fatal(err)
	}
	if err := a.Put("abc123def45", StageSummary, testArtifact{Value: 2}); err != nil {
		t.Fatal(err)
	}

	var out testArtifact
	if err := a.Get("abc123def45", StageSummary, &out); err != nil {
		t.Fatal(err)
	}
	if out.Value != 2 {
		t.Errorf("Value = %d, want the second write to win", out.Value)
	}
}

func TestArtifactsDelete(t *testing.T) {
	a := newTestArtifacts(t)

	if err := a.Put("abc123def45", StageDownload, testArtifact{Value: 1}); err != nil {
		t.Fatal(err)
	}
	if err := a.Delete("abc123def45", StageDownload); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if a.Exists("abc123def45", StageDownload) {
		t.Error("Exists() = true after Delete")
	}

	// Deleting an absent artifact is not an error.
	if err := a.Delete("abc123def45", StageDownload); err != nil {
		t.Errorf("Delete() on missing artifact = %v, want nil", err)
	}
}

func TestArtifactsStageSeparation(t *testing.T) {
	a := newTestArtifacts(t)

	if err := a.Put("abc123def45", StageTranscript, testArtifact{Value: 1}); err != nil {
		t.Fatal(err)
	}
	if a.Exists("abc123def45", StageChunks) {
		t.Error("transcript artifact must not satisfy a chunks lookup")
	}
}
