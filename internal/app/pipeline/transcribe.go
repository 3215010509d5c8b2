package pipeline

import (
	"context"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"

	"voxi/internal/app/engine"
	"voxi/internal/app/model"
)

// transcribe runs the transcription engine over every diarized segment.
// Per-segment calls are independent and run on a bounded worker pool;
// results are written back by index so the output keeps the original
// time order regardless of completion order. A failing segment degrades
// to empty text and never aborts the request.
func (p *Pipeline) transcribe(ctx context.Context, waveform *engine.Waveform, segments []model.Segment, forcedLang string) []model.Segment {
	if len(segments) == 0 {
		return segments
	}

	fallback := p.fallbackLanguage(ctx, waveform, forcedLang)
	if fallback != "" {
		p.log.Info("document fallback language estimated", zap.String("language", fallback))
	}

	workers := p.cfg.TranscribeWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(segments) {
		workers = len(segments)
	}

	out := make([]model.Segment, len(segments))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = p.transcribeOne(ctx, waveform, segments[i], fallback)
			}
		}()
	}
	for i := range segments {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

// fallbackLanguage estimates the document-level language once from a
// bounded leading context. A caller-forced language wins outright; a
// low-confidence guess is discarded so the engine auto-detects instead.
func (p *Pipeline) fallbackLanguage(ctx context.Context, waveform *engine.Waveform, forced string) string {
	if forced != "" {
		return NormalizeLanguage(forced)
	}

	lead := waveform.Slice(0, math.Min(p.cfg.FallbackLeadSeconds, waveform.Duration))
	if len(lead.Samples) == 0 {
		return ""
	}

	guess, err := p.transcriber.DetectLanguage(ctx, lead)
	if err != nil {
		p.log.Warn("fallback language detection failed", zap.Error(err))
		return ""
	}
	if guess == nil || guess.Confidence < p.cfg.DetectConfidence {
		return ""
	}
	code := NormalizeLanguage(guess.Code)
	if code == model.LanguageUnknown {
		return ""
	}
	return code
}

func (p *Pipeline) transcribeOne(ctx context.Context, waveform *engine.Waveform, seg model.Segment, fallback string) model.Segment {
	window := waveform.Slice(seg.Start, seg.End)
	if len(window.Samples) == 0 {
		// Widen to the minimum floor instead of skipping the segment.
		end := math.Min(seg.Start+p.cfg.MinWindowSeconds, waveform.Duration)
		begin := math.Max(0, end-p.cfg.MinWindowSeconds)
		window = waveform.Slice(begin, end)
	}
	if len(window.Samples) == 0 {
		return degradeSegment(seg)
	}

	hint := fallback
	// Detection on very short clips is unreliable by construction, so
	// they use the fallback directly.
	if seg.Duration() >= p.cfg.MinDetectSeconds {
		if guess, err := p.transcriber.DetectLanguage(ctx, window); err == nil && guess != nil {
			if code := NormalizeLanguage(guess.Code); code != model.LanguageUnknown && guess.Confidence >= p.cfg.DetectConfidence {
				hint = code
			}
		}
	}

	rec, err := p.transcriber.Transcribe(ctx, window, hint)
	p.metrics.RecordEngineCall("transcriber", "transcribe", err)
	if err != nil || rec == nil {
		p.log.Warn("segment transcription failed",
			zap.Float64("start", seg.Start),
			zap.Float64("end", seg.End),
			zap.Error(err))
		return degradeSegment(seg)
	}

	// Empty text on non-empty audio is a legitimate result (silence or
	// unintelligible speech), not an error.
	seg.Text = strings.TrimSpace(rec.Text)
	seg.Language = NormalizeLanguage(rec.Language)
	if seg.Language == model.LanguageUnknown && hint != "" {
		seg.Language = hint
	}
	seg.Confidence = rec.Confidence
	seg.Stage = model.StageEnriched
	return seg
}

// degradeSegment is the documented per-segment fallback: empty text,
// unknown language, sentinel confidence.
func degradeSegment(seg model.Segment) model.Segment {
	seg.Text = ""
	seg.Language = model.LanguageUnknown
	seg.Confidence = model.ConfidenceUnknown
	seg.Stage = model.StageEnriched
	return seg
}
