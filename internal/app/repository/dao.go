package repository

import (
	"context"
	"time"
)

// Record is one processed audio request as persisted.
type Record struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"file_name"`
	Duration    float64   `json:"duration"`
	Language    string    `json:"language"`
	Transcript  string    `json:"transcript"`
	Translation string    `json:"translation"`
	// Segments is the speaker-turn array serialized as JSON.
	Segments     string    `json:"segments"`
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}

// TranscriptDAO persists processed requests. Persistence failures are a
// degraded condition for the pipeline, never a request failure.
type TranscriptDAO interface {
	Save(ctx context.Context, rec *Record) (int64, error)
	Get(ctx context.Context, id int64) (*Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
	Close() error
}
