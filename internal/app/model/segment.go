package model

// Stage marks how far a Segment has progressed through the pipeline.
type Stage string

const (
	// StageRaw is a segment fresh out of diarization: timing and raw
	// speaker id only.
	StageRaw Stage = "raw"
	// StageEnriched carries recognized text, language and confidence.
	StageEnriched Stage = "enriched"
	// StageMerged is a speaker turn, possibly collapsed from several
	// consecutive enriched segments.
	StageMerged Stage = "merged"
)

// LanguageUnknown is the sentinel language code used whenever detection
// failed or was never attempted.
const LanguageUnknown = "unknown"

// ConfidenceUnknown marks an absent confidence score. It is diagnostic
// only and never gates inclusion in output.
const ConfidenceUnknown = -1.0

// Segment is the record that flows through every pipeline stage. It is
// created by the diarization adapter, enriched by the transcription
// dispatcher, labeled, merged into turns and finally translated.
// A segment is never split.
type Segment struct {
	SpeakerRaw   string  `json:"speaker_raw"`
	SpeakerLabel string  `json:"speaker_label"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Text         string  `json:"text"`
	Language     string  `json:"language"`
	Confidence   float64 `json:"confidence"`
	Translation  string  `json:"translation"`
	Stage        Stage   `json:"stage"`
}

// Duration returns the segment span in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}
