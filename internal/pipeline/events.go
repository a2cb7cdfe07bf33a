package pipeline

// Stage names, in execution order.
const (
	StageQueued       = "queued"
	StageDownloading  = "downloading"
	StageTranscribing = "transcribing"
	StageChunking     = "chunking"
	StageSummarizing  = "summarizing"
	StageCompleted    = "completed"
	StageError        = "error"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Event is one progress update on the run's event stream. The stream is
// FIFO, carries one processing and one completed event per stage plus a
// single terminal event, and is closed afterwards.
type Event struct {
	Stage    string `json:"stage"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
	VideoID  string `json:"video_id,omitempty"`
}

// eventCapacity is an upper bound on events per run, so the producer never
// blocks when a caller abandons the stream.
const eventCapacity = 16
