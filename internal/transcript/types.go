package transcript

// Segment is one timestamped span of transcribed speech.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Word carries word-level timing when the transcriber provides it.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the persisted output of the transcribing stage.
type Transcript struct {
	VideoID  string    `json:"video_id"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	FullText string    `json:"full_text"`
	Segments []Segment `json:"segments"`
}

// Sentence is one non-empty transcript line, ordered by start time.
// Immutable once produced.
type Sentence struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Timestamp string  `json:"timestamp"`
}
