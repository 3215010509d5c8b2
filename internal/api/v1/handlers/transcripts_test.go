package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxi/internal/api/v1/services"
	"voxi/internal/app/engine"
	"voxi/internal/app/repository"
)

type memoryDAO struct {
	records map[int64]repository.Record
}

func (m *memoryDAO) Save(ctx context.Context, rec *repository.Record) (int64, error) {
	id := int64(len(m.records) + 1)
	rec.ID = id
	m.records[id] = *rec
	return id, nil
}

func (m *memoryDAO) Get(ctx context.Context, id int64) (*repository.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &rec, nil
}

func (m *memoryDAO) List(ctx context.Context, limit, offset int) ([]repository.Record, error) {
	out := make([]repository.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memoryDAO) Close() error { return nil }

func newTranscriptRouter(dao repository.TranscriptDAO) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTranscriptHandler(services.NewTranscriptService(dao))
	router := gin.New()
	router.GET("/api/v1/transcripts", handler.List)
	router.GET("/api/v1/transcripts/:id", handler.Get)
	return router
}

func TestTranscriptEndpoints(t *testing.T) {
	dao := &memoryDAO{records: map[int64]repository.Record{
		1: {ID: 1, FileName: "talk.wav", Language: "fr", Transcript: "bonjour", Segments: "[]"},
	}}
	router := newTranscriptRouter(dao)

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transcripts", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Page  int               `json:"page"`
			Items []json.RawMessage `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Page)
		assert.Len(t, resp.Items, 1)
	})

	t.Run("list_rejects_bad_pagination", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transcripts?per_page=5000", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/1", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bonjour")
	})

	t.Run("get_invalid_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEnginesEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := engine.NewRegistry()
	require.NoError(t, registry.RegisterDiarizer("energy", func() (engine.Diarizer, error) {
		return stubDiarizer{}, nil
	}))
	handler := NewEngineHandler(registry, map[string]string{"diarizer": "energy"})

	router := gin.New()
	router.GET("/api/v1/engines", handler.List)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/engines", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Available map[string][]string `json:"available"`
		Active    map[string]string   `json:"active"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"energy"}, resp.Available["diarizers"])
	assert.Equal(t, "energy", resp.Active["diarizer"])
}
