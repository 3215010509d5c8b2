package dto

import (
	"github.com/samber/lo"

	"voxi/internal/app/model"
)

// ProcessOptions are the optional form fields accompanying an upload.
type ProcessOptions struct {
	// Language forces the transcription language hint.
	Language string `form:"language" binding:"omitempty,min=2,max=16"`
	// Translate disables the translation stage when set to false.
	Translate *bool `form:"translate"`
}

// TranslateEnabled defaults to true when the field is absent.
func (o ProcessOptions) TranslateEnabled() bool {
	return o.Translate == nil || *o.Translate
}

// Fingerprint summarizes the options for cache keying.
func (o ProcessOptions) Fingerprint() string {
	fp := "lang=" + o.Language
	if o.TranslateEnabled() {
		fp += ";translate"
	}
	return fp
}

// SpeakerTurn is one merged speaker turn in the response.
type SpeakerTurn struct {
	Speaker     string  `json:"speaker"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Transcript  string  `json:"transcript"`
	Translation string  `json:"translation,omitempty"`
}

// ProcessResponse is the JSON contract of the process endpoint. Every
// field is always present, defaulted when a stage degraded.
type ProcessResponse struct {
	ID          int64         `json:"id,omitempty"`
	Speakers    []SpeakerTurn `json:"speakers"`
	Transcript  string        `json:"transcript"`
	Language    string        `json:"language"`
	Translation string        `json:"translation"`
	Cached      bool          `json:"cached,omitempty"`
}

// NewProcessResponse maps a pipeline transcript into the wire shape.
func NewProcessResponse(t *model.Transcript) *ProcessResponse {
	return &ProcessResponse{
		Speakers: lo.Map(t.Segments, func(seg model.Segment, _ int) SpeakerTurn {
			return SpeakerTurn{
				Speaker:     seg.SpeakerLabel,
				Start:       seg.Start,
				End:         seg.End,
				Transcript:  seg.Text,
				Translation: seg.Translation,
			}
		}),
		Transcript:  t.Transcript,
		Language:    t.Language,
		Translation: t.Translation,
	}
}
