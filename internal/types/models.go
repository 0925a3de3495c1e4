package types

// Verdict labels. Label is string-valued and open to extension: the
// classification service may introduce new values without a change here.
const (
	LabelFraud   = "Fraud"
	LabelGenuine = "Genuine"
	LabelUnknown = "Unknown"
	LabelError   = "Error"
)

// Verdict is the classification service's structured judgment for one transcript.
type Verdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// ResultRecord pairs one audio file with its cleaned transcript and verdict.
// Exactly one record exists per discovered file, whatever stage failed.
type ResultRecord struct {
	AudioFile  string `json:"audio_file"`
	Transcript string `json:"transcript"`
	Verdict
}

// BatchReport is the aggregate outcome of one full run.
type BatchReport struct {
	Records    []ResultRecord `json:"records"`
	ByLabel    map[string]int `json:"by_label"`
	OutputPath string         `json:"output_path"`
	DurationMs int64          `json:"duration_ms"`
}
