package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"voxi/internal/app/engine"
	"voxi/internal/app/metrics"
	"voxi/internal/app/model"
)

// State is the orchestrator's position in the processing sequence.
// FAILED is reachable only from LOADED and DIARIZED; every later stage
// degrades instead of failing the request.
type State string

const (
	StateLoaded           State = "LOADED"
	StateDiarized         State = "DIARIZED"
	StateTranscribed      State = "TRANSCRIBED"
	StateLabeled          State = "LABELED"
	StateMerged           State = "MERGED"
	StateLanguageResolved State = "LANGUAGE_RESOLVED"
	StateTranslated       State = "TRANSLATED"
	StateDone             State = "DONE"
	StateFailed           State = "FAILED"
)

// Config tunes the dispatcher's window and language-hint policy.
type Config struct {
	// MinWindowSeconds is the floor an empty extraction window is widened
	// to instead of being skipped.
	MinWindowSeconds float64
	// MinDetectSeconds is the shortest segment that still gets its own
	// language detection; shorter clips use the document fallback directly.
	MinDetectSeconds float64
	// DetectConfidence is the minimum confidence at which a language
	// guess (segment-local or document fallback) is trusted.
	DetectConfidence float64
	// FallbackLeadSeconds bounds the leading audio context used to
	// estimate the document fallback language.
	FallbackLeadSeconds float64
	// TranscribeWorkers bounds parallel per-segment transcription calls.
	TranscribeWorkers int
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig() Config {
	return Config{
		MinWindowSeconds:    0.5,
		MinDetectSeconds:    0.6,
		DetectConfidence:    0.6,
		FallbackLeadSeconds: 45,
		TranscribeWorkers:   4,
	}
}

// Options are per-request knobs supplied by the caller.
type Options struct {
	// Language forces the transcription language hint instead of
	// estimating a fallback from the leading audio.
	Language string
	// Translate enables the translation stage. When disabled every
	// translation field carries the source text.
	Translate bool
}

// Pipeline orchestrates diarization, transcription, labeling, merging,
// language resolution and translation for one audio file at a time.
// It holds no per-request state; engine handles are shared across
// requests and constructed once by the registry.
type Pipeline struct {
	decoder     engine.Decoder
	diarizer    engine.Diarizer
	transcriber engine.Transcriber
	translator  engine.Translator
	cfg         Config
	log         *zap.Logger
	metrics     *metrics.Metrics
}

// New creates a pipeline. The translator may be nil, in which case the
// translation stage passes source text through.
func New(
	decoder engine.Decoder,
	diarizer engine.Diarizer,
	transcriber engine.Transcriber,
	translator engine.Translator,
	cfg Config,
	log *zap.Logger,
	m *metrics.Metrics,
) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		decoder:     decoder,
		diarizer:    diarizer,
		transcriber: transcriber,
		translator:  translator,
		cfg:         cfg,
		log:         log,
		metrics:     m,
	}
}

// Process runs the whole pipeline on one file. Decode and diarization
// failures are fatal; everything after degrades per segment and the
// request still succeeds with defaulted fields.
func (p *Pipeline) Process(ctx context.Context, filePath string, opts Options) (*model.Transcript, error) {
	log := p.log.With(zap.String("file", filePath))

	start := time.Now()
	waveform, err := p.decoder.Decode(ctx, filePath)
	p.metrics.ObserveStage("decode", start, err)
	if err != nil {
		p.metrics.RecordRequest("failed")
		log.Error("audio decoding failed", zap.Error(err))
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}
	state := StateLoaded
	log.Info("audio loaded",
		zap.Float64("duration_sec", waveform.Duration),
		zap.Int("sample_rate", waveform.SampleRate),
		zap.Int("channels", waveform.Channels))

	start = time.Now()
	segments, err := p.diarize(ctx, waveform)
	p.metrics.ObserveStage("diarize", start, err)
	if err != nil {
		p.metrics.RecordRequest("failed")
		log.Error("diarization failed", zap.Error(err))
		return nil, fmt.Errorf("diarization: %w", err)
	}
	state = p.advance(log, state, StateDiarized)
	log.Info("diarization complete", zap.Int("segments", len(segments)))

	start = time.Now()
	segments = p.transcribe(ctx, waveform, segments, opts.Language)
	p.metrics.ObserveStage("transcribe", start, nil)
	state = p.advance(log, state, StateTranscribed)

	assignSpeakerLabels(segments)
	state = p.advance(log, state, StateLabeled)

	start = time.Now()
	turns := mergeTurns(segments)
	p.metrics.ObserveStage("merge", start, nil)
	state = p.advance(log, state, StateMerged)
	log.Info("segments merged", zap.Int("turns", len(turns)))

	language := resolveDocumentLanguage(turns)
	state = p.advance(log, state, StateLanguageResolved)
	log.Info("document language resolved", zap.String("language", language))

	transcript := joinTranscript(turns)

	start = time.Now()
	translation := p.translate(ctx, turns, transcript, language, opts)
	p.metrics.ObserveStage("translate", start, nil)
	state = p.advance(log, state, StateTranslated)

	p.advance(log, state, StateDone)
	p.metrics.RecordRequest("ok")

	return &model.Transcript{
		Segments:    turns,
		Transcript:  transcript,
		Language:    language,
		Translation: translation,
	}, nil
}

func (p *Pipeline) advance(log *zap.Logger, from, to State) State {
	log.Debug("pipeline state transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return to
}

// joinTranscript concatenates turn texts in time order.
func joinTranscript(turns []model.Segment) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.Text != "" {
			parts = append(parts, t.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
