package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nithixh/youtube-summarizer/internal/chunker"
	"github.com/nithixh/youtube-summarizer/internal/config"
	"github.com/nithixh/youtube-summarizer/internal/downloader"
	"github.com/nithixh/youtube-summarizer/internal/logger"
	"github.com/nithixh/youtube-summarizer/internal/pipeline"
	"github.com/nithixh/youtube-summarizer/internal/server"
	"github.com/nithixh/youtube-summarizer/internal/store"
	"github.com/nithixh/youtube-summarizer/internal/summarizer"
	"github.com/nithixh/youtube-summarizer/internal/transcriber"
	"github.com/nithixh/youtube-summarizer/internal/watcher"
	"github.com/nithixh/youtube-summarizer/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "YouTube Summarizer")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Data directory: %s", cfg.Paths.Data)
	log.Info(ctx, "Whisper model: %s", cfg.Whisper.ModelPath)
	log.Info(ctx, "Chunking method: %s", cfg.Chunking.Method)
	log.Info(ctx, "Summarizer provider: %s", cfg.Summarizer.Provider)

	artifacts, err := store.NewArtifacts(cfg.Paths)
	if err != nil {
		log.Error(ctx, "Failed to prepare artifact store: %v", err)
		os.Exit(1)
	}

	var history *store.History
	if cfg.Database.Enabled {
		history, err = store.OpenHistory(cfg.Database.Path)
		if err != nil {
			log.Error(ctx, "Failed to open history database: %v", err)
			os.Exit(1)
		}
		defer history.Close()
	}

	exec := executor.New()
	dl := downloader.New(cfg, exec, log)
	trans := transcriber.New(cfg.Whisper, exec, log)
	chunk := chunker.New(cfg.Chunking, log)
	provider := summarizer.NewProvider(cfg.Summarizer, log)
	builder := summarizer.NewBuilder(provider, cfg.Summarizer.Provider, cfg.Summarizer.SummarySentences, log)

	pipe := pipeline.New(dl, trans, chunk, builder, artifacts, history, log)
	srv := server.New(pipe, artifacts, history, cfg, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	if cfg.Watcher.Enabled {
		if err := os.MkdirAll(cfg.Watcher.InboxDir, 0755); err != nil {
			log.Error(ctx, "Failed to create inbox dir: %v", err)
			os.Exit(1)
		}
		inbox, err := watcher.New(cfg.Watcher.InboxDir, inboxHandler(pipe, log), log, cfg.Watcher.MaxConcurrent)
		if err != nil {
			log.Error(ctx, "Failed to create inbox watcher: %v", err)
			os.Exit(1)
		}
		defer inbox.Stop()

		go func() {
			if err := inbox.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
		log.Info(ctx, "Inbox watcher enabled: %s", cfg.Watcher.InboxDir)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go func() {
		log.Info(ctx, "Listening on http://%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Error(ctx, "Shutdown server: %v", err)
	}
	log.Info(ctx, "YouTube Summarizer stopped")
}

// inboxHandler feeds a dropped audio file through the pipeline, draining
// its event stream to the log.
func inboxHandler(pipe *pipeline.Pipeline, log logger.Logger) watcher.Handler {
	return func(ctx context.Context, audioPath string) error {
		for event := range pipe.RunLocal(ctx, audioPath) {
			if event.Status == pipeline.StatusError {
				return fmt.Errorf("processing %s: %s", audioPath, event.Message)
			}
			log.Info(ctx, "[%s] %d%% %s", event.Stage, event.Progress, event.Message)
		}
		return nil
	}
}
