package pyannote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"voxi/internal/app/audio"
	"voxi/internal/app/engine"
)

// Config points at a pyannote diarization microservice.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	DiarizePath  string        `yaml:"diarize_path"`
	Timeout      time.Duration `yaml:"timeout"`
	AuthToken    string        `yaml:"auth_token"`
	NumSpeakers  int           `yaml:"num_speakers"`
	MinSpeakers  int           `yaml:"min_speakers"`
	MaxSpeakers  int           `yaml:"max_speakers"`
}

// Diarizer partitions audio into speaker turns by calling a pyannote
// service over HTTP. Diarization is the one stage whose failure is fatal
// to a request, so errors propagate untouched.
type Diarizer struct {
	config Config
	client *http.Client
	log    *zap.Logger
}

type diarizeResponse struct {
	Segments []engine.Turn `json:"segments"`
	Error    string        `json:"error,omitempty"`
}

// NewDiarizer creates a pyannote HTTP diarizer.
func NewDiarizer(config Config, log *zap.Logger) *Diarizer {
	if config.DiarizePath == "" {
		config.DiarizePath = "/diarize"
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Diarizer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    log,
	}
}

// Diarize posts the waveform as WAV and returns the service's turns in
// the order it emitted them.
func (d *Diarizer) Diarize(ctx context.Context, waveform *engine.Waveform) ([]engine.Turn, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	wav := audio.EncodeWAV(engine.Window{Samples: waveform.Samples, SampleRate: waveform.SampleRate})
	if _, err := part.Write(wav); err != nil {
		return nil, fmt.Errorf("writing wav payload: %w", err)
	}
	if d.config.NumSpeakers > 0 {
		writer.WriteField("num_speakers", fmt.Sprint(d.config.NumSpeakers))
	}
	if d.config.MinSpeakers > 0 {
		writer.WriteField("min_speakers", fmt.Sprint(d.config.MinSpeakers))
	}
	if d.config.MaxSpeakers > 0 {
		writer.WriteField("max_speakers", fmt.Sprint(d.config.MaxSpeakers))
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	url := strings.TrimRight(d.config.BaseURL, "/") + d.config.DiarizePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if d.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.config.AuthToken)
	}

	httpResp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request: %w", err)
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diarization service returned %d: %s", httpResp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var resp diarizeResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("diarization service error: %s", resp.Error)
	}

	d.log.Debug("diarization service returned turns", zap.Int("turns", len(resp.Segments)))
	return resp.Segments, nil
}
