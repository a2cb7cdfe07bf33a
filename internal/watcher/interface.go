package watcher

import "context"

// Watcher monitors the inbox directory for dropped audio files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one dropped audio file.
type Handler func(ctx context.Context, audioPath string) error
