package dto

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"

	"voxi/internal/app/repository"
)

// ListQuery paginates the transcript listing.
type ListQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// Normalize applies the listing defaults.
func (q *ListQuery) Normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = 20
	}
}

// TranscriptSummary is one row of the transcript listing.
type TranscriptSummary struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"file_name"`
	Duration  float64   `json:"duration"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptDetail is the full stored transcript.
type TranscriptDetail struct {
	TranscriptSummary
	Transcript   string          `json:"transcript"`
	Translation  string          `json:"translation"`
	Speakers     json.RawMessage `json:"speakers"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// ListResponse wraps a page of summaries.
type ListResponse struct {
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
	Items   []TranscriptSummary `json:"items"`
}

func summaryFromRecord(rec repository.Record) TranscriptSummary {
	return TranscriptSummary{
		ID:        rec.ID,
		FileName:  rec.FileName,
		Duration:  rec.Duration,
		Language:  rec.Language,
		CreatedAt: rec.CreatedAt,
	}
}

// NewListResponse maps stored records into the listing shape.
func NewListResponse(page, perPage int, recs []repository.Record) *ListResponse {
	return &ListResponse{
		Page:    page,
		PerPage: perPage,
		Items: lo.Map(recs, func(rec repository.Record, _ int) TranscriptSummary {
			return summaryFromRecord(rec)
		}),
	}
}

// NewTranscriptDetail maps one stored record into the detail shape.
func NewTranscriptDetail(rec *repository.Record) *TranscriptDetail {
	speakers := json.RawMessage(rec.Segments)
	if len(speakers) == 0 {
		speakers = json.RawMessage("[]")
	}
	return &TranscriptDetail{
		TranscriptSummary: summaryFromRecord(*rec),
		Transcript:        rec.Transcript,
		Translation:       rec.Translation,
		Speakers:          speakers,
		ErrorMessage:      rec.ErrorMessage,
	}
}
