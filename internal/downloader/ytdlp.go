package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nithixh/youtube-summarizer/internal/config"
	"github.com/nithixh/youtube-summarizer/internal/logger"
	"github.com/nithixh/youtube-summarizer/pkg/executor"
)

// ErrInvalidURL means the URL is not from an allowed domain or carries no
// recognizable video id. Rejected before any stage runs.
var ErrInvalidURL = errors.New("invalid video URL")

// ErrDurationExceeded means the video is longer than the configured limit.
var ErrDurationExceeded = errors.New("video duration exceeds limit")

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
}

type implDownloader struct {
	downloadsDir    string
	allowedDomains  []string
	maxVideoMinutes int
	format          string
	audioQuality    int
	executor        executor.Executor
	logger          logger.Logger
}

// New creates a yt-dlp backed Downloader.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Downloader {
	return &implDownloader{
		downloadsDir:    cfg.Paths.Downloads,
		allowedDomains:  cfg.Limits.AllowedDomains,
		maxVideoMinutes: cfg.Limits.MaxVideoMinutes,
		format:          cfg.Download.Format,
		audioQuality:    cfg.Download.AudioQuality,
		executor:        exec,
		logger:          log,
	}
}

// Validate checks that the URL belongs to one of the allowed domains.
func (d *implDownloader) Validate(rawURL string) error {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	for _, domain := range d.allowedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return nil
		}
	}

	return fmt.Errorf("%w: domain %s not allowed", ErrInvalidURL, host)
}

// ExtractVideoID pulls the 11-character video id out of a watch, short or
// embed URL. The id keys every artifact of the run.
func (d *implDownloader) ExtractVideoID(rawURL string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: no video id in %s", ErrInvalidURL, rawURL)
}

// Fetch validates the URL, checks the duration limit and downloads the
// audio track.
func (d *implDownloader) Fetch(ctx context.Context, rawURL string) (Download, error) {
	if err := d.Validate(rawURL); err != nil {
		return Download{}, err
	}

	meta, err := d.probe(ctx, rawURL)
	if err != nil {
		return Download{}, err
	}

	if meta.Duration > float64(d.maxVideoMinutes*60) {
		return Download{}, fmt.Errorf("%w: video is %.0f min, max allowed %d min",
			ErrDurationExceeded, meta.Duration/60, d.maxVideoMinutes)
	}

	if err := os.MkdirAll(d.downloadsDir, 0755); err != nil {
		return Download{}, fmt.Errorf("create downloads dir: %w", err)
	}

	outTemplate := filepath.Join(d.downloadsDir, meta.ID+".%(ext)s")
	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", d.format,
		"--audio-quality", fmt.Sprintf("%dK", d.audioQuality),
		"-o", outTemplate,
		"--no-warnings",
		"--no-playlist",
		rawURL,
	}

	d.logger.Info(ctx, "downloading audio for %s (%s)", meta.ID, meta.Title)
	if _, err := d.executor.Execute(ctx, "yt-dlp", args...); err != nil {
		return Download{}, fmt.Errorf("yt-dlp download: %w", err)
	}

	audioPath := filepath.Join(d.downloadsDir, meta.ID+"."+d.format)
	info, err := os.Stat(audioPath)
	if err != nil {
		return Download{}, fmt.Errorf("audio file missing after download: %w", err)
	}

	checksum, err := ChecksumFile(audioPath)
	if err != nil {
		return Download{}, fmt.Errorf("checksum audio: %w", err)
	}

	return Download{
		AudioPath: audioPath,
		Metadata:  meta,
		FileSize:  info.Size(),
		Checksum:  checksum,
	}, nil
}

// probe fetches video metadata without downloading.
func (d *implDownloader) probe(ctx context.Context, rawURL string) (Metadata, error) {
	out, err := d.executor.Execute(ctx, "yt-dlp", "-J", "--no-warnings", "--no-playlist", rawURL)
	if err != nil {
		return Metadata{}, fmt.Errorf("yt-dlp probe: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse yt-dlp metadata: %w", err)
	}
	if meta.ID == "" {
		return Metadata{}, fmt.Errorf("%w: metadata carries no video id", ErrInvalidURL)
	}

	return meta, nil
}

// Remove deletes a downloaded file.
func (d *implDownloader) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove audio file: %w", err)
	}
	return nil
}
