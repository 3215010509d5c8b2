package whisperserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxi/internal/app/engine"
	"voxi/internal/app/model"
)

func testWindow() engine.Window {
	return engine.Window{Samples: make([]float32, 1600), SampleRate: 16000}
}

func TestTranscribe(t *testing.T) {
	var gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotLanguage = r.FormValue("language")
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "window.wav", header.Filename)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"text":     "  hallo welt ",
			"language": "de",
			"segments": []map[string]interface{}{
				{"text": "hallo welt", "start": 0, "end": 1, "avg_logprob": 0.0},
			},
		})
	}))
	defer server.Close()

	tr := NewTranscriber(Config{BaseURL: server.URL}, nil)
	rec, err := tr.Transcribe(context.Background(), testWindow(), "de")
	require.NoError(t, err)

	assert.Equal(t, "de", gotLanguage)
	assert.Equal(t, "hallo welt", rec.Text)
	assert.Equal(t, "de", rec.Language)
	assert.InDelta(t, 1.0, rec.Confidence, 1e-9)
}

func TestTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	tr := NewTranscriber(Config{BaseURL: server.URL}, nil)
	_, err := tr.Transcribe(context.Background(), testWindow(), "")
	assert.ErrorContains(t, err, "model not loaded")
}

func TestTranscribeErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "audio too short"})
	}))
	defer server.Close()

	tr := NewTranscriber(Config{BaseURL: server.URL}, nil)
	_, err := tr.Transcribe(context.Background(), testWindow(), "")
	assert.ErrorContains(t, err, "audio too short")
}

func TestDetectLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "auto", r.FormValue("language"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"detected_language":             "ja",
			"detected_language_probability": 0.87,
		})
	}))
	defer server.Close()

	tr := NewTranscriber(Config{BaseURL: server.URL}, nil)
	guess, err := tr.DetectLanguage(context.Background(), testWindow())
	require.NoError(t, err)

	assert.Equal(t, "ja", guess.Code)
	assert.InDelta(t, 0.87, guess.Confidence, 1e-9)
}

func TestDetectLanguageNoSignal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	tr := NewTranscriber(Config{BaseURL: server.URL}, nil)
	guess, err := tr.DetectLanguage(context.Background(), testWindow())
	require.NoError(t, err)
	assert.Equal(t, model.LanguageUnknown, guess.Code)
}
