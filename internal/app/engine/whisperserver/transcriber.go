package whisperserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"voxi/internal/app/audio"
	"voxi/internal/app/engine"
	"voxi/internal/app/model"
)

// Config points at a whisper.cpp server instance.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	InferencePath string        `yaml:"inference_path"`
	Timeout       time.Duration `yaml:"timeout"`
	Temperature   float64       `yaml:"temperature"`
}

// Transcriber recognizes speech windows via the whisper-server HTTP API.
// It keeps the model loaded in a long-running local process, so windows
// can be sent at per-segment granularity without reload cost.
type Transcriber struct {
	config Config
	client *http.Client
	log    *zap.Logger
}

type inferenceResponse struct {
	Text             string  `json:"text,omitempty"`
	Language         string  `json:"language,omitempty"`
	DetectedLanguage string  `json:"detected_language,omitempty"`
	DetectedLangProb float64 `json:"detected_language_probability,omitempty"`
	Segments         []struct {
		Text       string  `json:"text"`
		Start      float64 `json:"start"`
		End        float64 `json:"end"`
		AvgLogprob float64 `json:"avg_logprob,omitempty"`
	} `json:"segments,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewTranscriber creates a whisper-server transcriber with sane defaults.
func NewTranscriber(config Config, log *zap.Logger) *Transcriber {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Transcriber{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    log,
	}
}

// Transcribe posts the window to /inference and parses the verbose JSON
// response.
func (t *Transcriber) Transcribe(ctx context.Context, window engine.Window, languageHint string) (*engine.Recognition, error) {
	resp, err := t.infer(ctx, window, languageHint)
	if err != nil {
		return nil, err
	}

	lang := resp.Language
	if lang == "" {
		lang = resp.DetectedLanguage
	}
	if lang == "" {
		lang = model.LanguageUnknown
	}
	return &engine.Recognition{
		Text:       strings.TrimSpace(resp.Text),
		Language:   lang,
		Confidence: responseConfidence(resp),
	}, nil
}

// DetectLanguage runs inference with auto-detection and keeps only the
// language fields.
func (t *Transcriber) DetectLanguage(ctx context.Context, window engine.Window) (*engine.LanguageGuess, error) {
	resp, err := t.infer(ctx, window, "auto")
	if err != nil {
		return nil, err
	}

	code := resp.DetectedLanguage
	conf := resp.DetectedLangProb
	if code == "" {
		code = resp.Language
		conf = responseConfidence(resp)
	}
	if code == "" {
		return &engine.LanguageGuess{Code: model.LanguageUnknown}, nil
	}
	return &engine.LanguageGuess{Code: code, Confidence: conf}, nil
}

func (t *Transcriber) infer(ctx context.Context, window engine.Window, language string) (*inferenceResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "window.wav")
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(audio.EncodeWAV(window)); err != nil {
		return nil, fmt.Errorf("writing wav payload: %w", err)
	}
	writer.WriteField("response_format", "verbose_json")
	writer.WriteField("temperature", fmt.Sprintf("%.2f", t.config.Temperature))
	if language != "" {
		writer.WriteField("language", language)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	url := strings.TrimRight(t.config.BaseURL, "/") + t.config.InferencePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	httpResp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper-server request: %w", err)
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper-server returned %d: %s", httpResp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var resp inferenceResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("whisper-server error: %s", resp.Error)
	}
	return &resp, nil
}

func responseConfidence(resp *inferenceResponse) float64 {
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
