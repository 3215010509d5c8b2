package openai

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"voxi/internal/app/audio"
	"voxi/internal/app/engine"
	"voxi/internal/app/model"
)

// Transcriber recognizes speech windows through the OpenAI audio API.
// The client is shared and safe for concurrent use; one instance serves
// all requests.
type Transcriber struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// NewTranscriber creates an OpenAI-backed transcriber. An empty model
// defaults to whisper-1.
func NewTranscriber(client *openai.Client, whisperModel string, log *zap.Logger) *Transcriber {
	if whisperModel == "" {
		whisperModel = string(openai.Whisper1)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Transcriber{client: client, model: whisperModel, log: log}
}

// Transcribe sends the window as an in-memory WAV and returns the
// recognized text with the engine-detected language.
func (t *Transcriber) Transcribe(ctx context.Context, window engine.Window, languageHint string) (*engine.Recognition, error) {
	resp, err := t.request(ctx, window, languageHint)
	if err != nil {
		return nil, err
	}

	lang := resp.Language
	if lang == "" {
		lang = model.LanguageUnknown
	}
	return &engine.Recognition{
		Text:       resp.Text,
		Language:   lang,
		Confidence: segmentConfidence(resp),
	}, nil
}

// DetectLanguage runs a throwaway verbose transcription on the window
// and keeps only the language signal.
func (t *Transcriber) DetectLanguage(ctx context.Context, window engine.Window) (*engine.LanguageGuess, error) {
	resp, err := t.request(ctx, window, "")
	if err != nil {
		return nil, err
	}
	if resp.Language == "" {
		return &engine.LanguageGuess{Code: model.LanguageUnknown}, nil
	}
	return &engine.LanguageGuess{
		Code:       resp.Language,
		Confidence: segmentConfidence(resp),
	}, nil
}

func (t *Transcriber) request(ctx context.Context, window engine.Window, languageHint string) (openai.AudioResponse, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: "window.wav",
		Reader:   bytes.NewReader(audio.EncodeWAV(window)),
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: languageHint,
	}
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return openai.AudioResponse{}, fmt.Errorf("createTranscription: %w", err)
	}
	return resp, nil
}

// segmentConfidence folds the per-segment average log probabilities into
// one 0..1 score. Responses without segment detail carry the sentinel.
func segmentConfidence(resp openai.AudioResponse) float64 {
	if len(resp.Segments) == 0 {
		return model.ConfidenceUnknown
	}
	var sum float64
	for _, seg := range resp.Segments {
		sum += math.Exp(seg.AvgLogprob)
	}
	conf := sum / float64(len(resp.Segments))
	if conf > 1 {
		conf = 1
	}
	return conf
}
