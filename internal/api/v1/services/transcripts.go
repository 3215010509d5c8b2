package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"voxi/internal/api/errors"
	"voxi/internal/api/v1/dto"
	"voxi/internal/app/repository"
)

// TranscriptService reads back previously processed transcripts.
type TranscriptService struct {
	dao repository.TranscriptDAO
}

// NewTranscriptService wires a transcript read service.
func NewTranscriptService(dao repository.TranscriptDAO) *TranscriptService {
	return &TranscriptService{dao: dao}
}

// List returns one page of transcript summaries.
func (s *TranscriptService) List(ctx context.Context, query dto.ListQuery) (*dto.ListResponse, error) {
	query.Normalize()
	if s.dao == nil {
		return dto.NewListResponse(query.Page, query.PerPage, nil), nil
	}

	offset := (query.Page - 1) * query.PerPage
	recs, err := s.dao.List(ctx, query.PerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}
	return dto.NewListResponse(query.Page, query.PerPage, recs), nil
}

// Get returns one stored transcript by id.
func (s *TranscriptService) Get(ctx context.Context, id int64) (*dto.TranscriptDetail, error) {
	if s.dao == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("transcript %d", id))
	}

	rec, err := s.dao.Get(ctx, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("transcript %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("loading transcript %d: %w", id, err)
	}
	return dto.NewTranscriptDetail(rec), nil
}
