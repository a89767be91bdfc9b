package models

// SummaryData is the structured summary produced by the summarization
// stage. Immutable once created; consumed exactly once by the
// audio-formatting stage.
type SummaryData struct {
	Title           string   `json:"title" yaml:"title"`
	ShortSummary    string   `json:"short_summary" yaml:"short_summary"`
	DetailedSummary string   `json:"detailed_summary" yaml:"detailed_summary"`
	KeyPoints       []string `json:"key_points" yaml:"key_points"`
}

// AudioFormat is the narration-ready output of the audio-formatting
// stage. Filename carries no extension and is sanitized by the stage
// before use.
type AudioFormat struct {
	Title         string `json:"title" yaml:"title"`
	NarrationText string `json:"narration_text" yaml:"narration_text"`
	Filename      string `json:"filename" yaml:"filename"`
}
