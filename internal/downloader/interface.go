package downloader

import "context"

// Downloader resolves a video URL to a local audio file plus metadata.
type Downloader interface {
	Validate(url string) error
	ExtractVideoID(url string) (string, error)
	Fetch(ctx context.Context, url string) (Download, error)
	Remove(path string) error
}

// Metadata describes the source video.
type Metadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Uploader string  `json:"uploader"`
}

// Download is the persisted output of the downloading stage. Checksum is
// the blake3 hash of the audio file, re-verified before a cached download
// is reused.
type Download struct {
	AudioPath string   `json:"audio_path"`
	Metadata  Metadata `json:"video_metadata"`
	FileSize  int64    `json:"file_size"`
	Checksum  string   `json:"checksum"`
}
