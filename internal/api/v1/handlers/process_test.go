package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voxi/internal/api/v1/dto"
	"voxi/internal/api/v1/services"
	"voxi/internal/app/engine"
	"voxi/internal/app/pipeline"
)

type stubDecoder struct{}

func (stubDecoder) Decode(ctx context.Context, filePath string) (*engine.Waveform, error) {
	samples := make([]float32, 16000*2)
	for i := range samples {
		samples[i] = 0.5
	}
	return &engine.Waveform{Samples: samples, SampleRate: 16000, Channels: 1, Duration: 2}, nil
}

type stubDiarizer struct{}

func (stubDiarizer) Diarize(ctx context.Context, waveform *engine.Waveform) ([]engine.Turn, error) {
	return []engine.Turn{{Speaker: "spk_0", Start: 0, End: 2}}, nil
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(ctx context.Context, window engine.Window, languageHint string) (*engine.Recognition, error) {
	return &engine.Recognition{Text: "hello there", Language: "en", Confidence: 0.9}, nil
}

func (stubTranscriber) DetectLanguage(ctx context.Context, window engine.Window) (*engine.LanguageGuess, error) {
	return &engine.LanguageGuess{Code: "en", Confidence: 0.9}, nil
}

func newProcessRouter(t *testing.T, maxBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := pipeline.New(stubDecoder{}, stubDiarizer{}, stubTranscriber{}, nil,
		pipeline.DefaultConfig(), zap.NewNop(), nil)
	service := services.NewProcessService(p, nil, nil, nil, zap.NewNop())
	handler := NewProcessHandler(service, maxBytes, zap.NewNop())

	router := gin.New()
	router.POST("/api/v1/process", handler.Process)
	return router
}

func uploadRequest(t *testing.T, fileField, fileName string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestProcessEndpoint(t *testing.T) {
	t.Run("returns_full_transcript_payload", func(t *testing.T) {
		router := newProcessRouter(t, 1<<20)
		req := uploadRequest(t, "file", "talk.wav", []byte("fake-audio"), nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.ProcessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Speakers, 1)
		assert.Equal(t, "Speaker A", resp.Speakers[0].Speaker)
		assert.Equal(t, "hello there", resp.Transcript)
		assert.Equal(t, "en", resp.Language)
		assert.Equal(t, "hello there", resp.Translation)
	})

	t.Run("missing_file_part", func(t *testing.T) {
		router := newProcessRouter(t, 1<<20)
		req := uploadRequest(t, "", "", nil, map[string]string{"language": "fr"})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		router := newProcessRouter(t, 1<<20)
		req := uploadRequest(t, "file", "notes.pdf", []byte("pdf"), nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("oversize_upload", func(t *testing.T) {
		router := newProcessRouter(t, 16)
		req := uploadRequest(t, "file", "talk.wav", bytes.Repeat([]byte("a"), 1024), nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("invalid_language_option", func(t *testing.T) {
		router := newProcessRouter(t, 1<<20)
		req := uploadRequest(t, "file", "talk.wav", []byte("fake-audio"), map[string]string{"language": "x"})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
