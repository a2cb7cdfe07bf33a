package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one row of processing history. video_id is unique; a re-run
// for the same video replaces its record.
type Record struct {
	VideoID       string    `json:"video_id"`
	VideoTitle    string    `json:"video_title"`
	SourceURL     string    `json:"source_url"`
	SummaryPath   string    `json:"summary_file"`
	TotalChapters int       `json:"total_chapters"`
	CreatedAt     time.Time `json:"created_at"`
}

// History is the sqlite-backed history store.
type History struct {
	db *sql.DB
}

// OpenHistory opens (and if needed initializes) the history database.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	_, err = db.Exec(`
	PRAGMA busy_timeout  = 10000;
	PRAGMA journal_mode  = WAL;
	PRAGMA synchronous   = NORMAL;
	PRAGMA foreign_keys  = ON;

	create table if not exists summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		video_id text not null unique,
		video_title text,
		url text,
		summary_file text,
		total_chapters integer,
		created_at timestamp default CURRENT_TIMESTAMP
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// Upsert inserts or replaces the record for a video.
func (h *History) Upsert(ctx context.Context, r Record) error {
	_, err := h.db.ExecContext(ctx, `
		insert into summaries (video_id, video_title, url, summary_file, total_chapters)
		values ($1, $2, $3, $4, $5)
		on conflict (video_id) do update set
			video_title = excluded.video_title,
			url = excluded.url,
			summary_file = excluded.summary_file,
			total_chapters = excluded.total_chapters,
			created_at = CURRENT_TIMESTAMP
	`, r.VideoID, r.VideoTitle, r.SourceURL, r.SummaryPath, r.TotalChapters)
	if err != nil {
		return fmt.Errorf("upsert history record: %w", err)
	}
	return nil
}

// Recent returns the most recently processed videos, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := h.db.QueryContext(ctx, `
		select video_id, video_title, url, summary_file, total_chapters, created_at
		from summaries
		order by created_at desc
		limit $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.VideoID, &r.VideoTitle, &r.SourceURL, &r.SummaryPath, &r.TotalChapters, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history records: %w", err)
	}

	return records, nil
}

// Get returns the record for one video. Returns ErrNotFound when absent.
func (h *History) Get(ctx context.Context, videoID string) (Record, error) {
	var r Record
	err := h.db.
		QueryRowContext(ctx, `
			select video_id, video_title, url, summary_file, total_chapters, created_at
			from summaries
			where video_id = $1
		`, videoID).
		Scan(&r.VideoID, &r.VideoTitle, &r.SourceURL, &r.SummaryPath, &r.TotalChapters, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: history for %s", ErrNotFound, videoID)
	}
	if err != nil {
		return r, fmt.Errorf("get history record: %w", err)
	}
	return r, nil
}
