package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"voxi/internal/api/v1/dto"
	"voxi/internal/app/cache"
	"voxi/internal/app/model"
	"voxi/internal/app/pipeline"
	"voxi/internal/app/repository"
	"voxi/internal/app/storage"
)

// ProcessService runs uploads through the pipeline and handles the
// surrounding plumbing: result caching, persistence and archival. Only
// the pipeline itself can fail a request; everything else degrades.
type ProcessService struct {
	pipeline *pipeline.Pipeline
	dao      repository.TranscriptDAO
	cache    *cache.ResultCache
	archiver *storage.Archiver
	log      *zap.Logger
}

// NewProcessService wires a process service. dao, cache and archiver may
// each be nil, disabling the corresponding concern.
func NewProcessService(
	p *pipeline.Pipeline,
	dao repository.TranscriptDAO,
	c *cache.ResultCache,
	a *storage.Archiver,
	log *zap.Logger,
) *ProcessService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessService{pipeline: p, dao: dao, cache: c, archiver: a, log: log}
}

// Process handles one uploaded file living at filePath. originalName is
// the client-supplied file name, kept for persistence and archival.
func (s *ProcessService) Process(ctx context.Context, filePath, originalName string, opts dto.ProcessOptions) (*dto.ProcessResponse, error) {
	key := s.cacheKey(filePath, opts)
	if key != "" {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.log.Info("result cache hit", zap.String("file", originalName))
			resp := dto.NewProcessResponse(cached)
			resp.Cached = true
			return resp, nil
		}
	}

	result, err := s.pipeline.Process(ctx, filePath, pipeline.Options{
		Language:  opts.Language,
		Translate: opts.TranslateEnabled(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.archiver.Archive(ctx, filePath, originalName); err != nil {
		s.log.Warn("upload archival failed", zap.String("file", originalName), zap.Error(err))
	}

	resp := dto.NewProcessResponse(result)
	resp.ID = s.save(ctx, originalName, result)

	if key != "" {
		s.cache.Set(ctx, key, result)
	}
	return resp, nil
}

func (s *ProcessService) cacheKey(filePath string, opts dto.ProcessOptions) string {
	if s.cache == nil {
		return ""
	}
	key, err := s.cache.Key(filePath, opts.Fingerprint())
	if err != nil {
		s.log.Warn("cache key derivation failed", zap.Error(err))
		return ""
	}
	return key
}

// save persists the result and returns the new record id, or 0 when
// persistence is disabled or failed.
func (s *ProcessService) save(ctx context.Context, originalName string, result *model.Transcript) int64 {
	if s.dao == nil {
		return 0
	}

	segments, err := json.Marshal(result.Segments)
	if err != nil {
		s.log.Warn("segment serialization failed", zap.Error(err))
		segments = []byte("[]")
	}

	duration := 0.0
	if n := len(result.Segments); n > 0 {
		duration = result.Segments[n-1].End
	}

	id, err := s.dao.Save(ctx, &repository.Record{
		FileName:    originalName,
		Duration:    duration,
		Language:    result.Language,
		Transcript:  result.Transcript,
		Translation: result.Translation,
		Segments:    string(segments),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("transcript persistence failed", zap.String("file", originalName), zap.Error(err))
		return 0
	}
	return id
}
