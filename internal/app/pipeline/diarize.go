package pipeline

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"voxi/internal/app/engine"
	"voxi/internal/app/model"
)

// diarize normalizes the diarization engine's turns into ordered raw
// segments. Degenerate turns (end <= start) are dropped silently; an
// engine failure is fatal because nothing downstream can run without
// segment boundaries.
func (p *Pipeline) diarize(ctx context.Context, waveform *engine.Waveform) ([]model.Segment, error) {
	turns, err := p.diarizer.Diarize(ctx, waveform)
	if err != nil {
		return nil, err
	}

	segments := make([]model.Segment, 0, len(turns))
	for _, turn := range turns {
		if turn.End <= turn.Start {
			p.log.Debug("dropping degenerate diarization turn",
				zap.String("speaker", turn.Speaker),
				zap.Float64("start", turn.Start),
				zap.Float64("end", turn.End))
			continue
		}
		segments = append(segments, model.Segment{
			SpeakerRaw: turn.Speaker,
			Start:      turn.Start,
			End:        turn.End,
			Language:   model.LanguageUnknown,
			Confidence: model.ConfidenceUnknown,
			Stage:      model.StageRaw,
		})
	}

	// Engines do not always emit monotonic start times. A stable sort
	// restores time order without reordering equal starts.
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})

	return segments, nil
}
