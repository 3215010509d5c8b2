package energy

import (
	"context"
	"fmt"
	"math"

	"voxi/internal/app/engine"
)

// Diarizer is a heuristic, model-free diarizer: voiced regions are found
// by frame energy against an adaptive threshold, and the speaker is
// alternated whenever the silence gap between regions exceeds a
// threshold. It serves as the degraded fallback when no diarization
// service is configured, and as the engine of choice in tests.
type Diarizer struct {
	// FrameSeconds is the analysis frame length.
	FrameSeconds float64
	// GapSeconds is the minimum silence between regions that suggests a
	// speaker change.
	GapSeconds float64
	// MinTurnSeconds drops voiced regions shorter than this.
	MinTurnSeconds float64
	// Speakers is the number of ids to alternate between.
	Speakers int
}

// NewDiarizer returns a diarizer with the production defaults.
func NewDiarizer() *Diarizer {
	return &Diarizer{
		FrameSeconds:   0.02,
		GapSeconds:     1.5,
		MinTurnSeconds: 0.3,
		Speakers:       2,
	}
}

// Diarize splits the waveform into voiced regions and attributes them to
// alternating speakers.
func (d *Diarizer) Diarize(_ context.Context, waveform *engine.Waveform) ([]engine.Turn, error) {
	if waveform == nil || len(waveform.Samples) == 0 {
		return nil, fmt.Errorf("empty waveform")
	}

	frame := int(d.FrameSeconds * float64(waveform.SampleRate))
	if frame < 1 {
		frame = 1
	}

	energies := frameEnergies(waveform.Samples, frame)
	threshold := energyThreshold(energies)

	regions := voicedRegions(energies, threshold, d.FrameSeconds)
	regions = dropShort(regions, d.MinTurnSeconds)

	speakers := d.Speakers
	if speakers < 1 {
		speakers = 1
	}

	turns := make([]engine.Turn, 0, len(regions))
	speaker := 0
	for i, r := range regions {
		if i > 0 && r.start-regions[i-1].end > d.GapSeconds {
			speaker = (speaker + 1) % speakers
		}
		turns = append(turns, engine.Turn{
			Speaker: fmt.Sprintf("SPEAKER_%02d", speaker),
			Start:   r.start,
			End:     r.end,
		})
	}
	return turns, nil
}

type region struct {
	start, end float64
}

func frameEnergies(samples []float32, frame int) []float64 {
	energies := make([]float64, 0, len(samples)/frame+1)
	for off := 0; off < len(samples); off += frame {
		end := off + frame
		if end > len(samples) {
			end = len(samples)
		}
		var sum float64
		for _, s := range samples[off:end] {
			sum += float64(s) * float64(s)
		}
		energies = append(energies, math.Sqrt(sum/float64(end-off)))
	}
	return energies
}

// energyThreshold sits between the mean energy and the noise floor so
// quiet speech still registers as voiced.
func energyThreshold(energies []float64) float64 {
	if len(energies) == 0 {
		return 0
	}
	var sum float64
	for _, e := range energies {
		sum += e
	}
	mean := sum / float64(len(energies))
	return mean * 0.5
}

func voicedRegions(energies []float64, threshold, frameSeconds float64) []region {
	var regions []region
	inRegion := false
	var start float64
	for i, e := range energies {
		at := float64(i) * frameSeconds
		switch {
		case e >= threshold && !inRegion:
			inRegion = true
			start = at
		case e < threshold && inRegion:
			inRegion = false
			regions = append(regions, region{start: start, end: at})
		}
	}
	if inRegion {
		regions = append(regions, region{start: start, end: float64(len(energies)) * frameSeconds})
	}
	return regions
}

func dropShort(regions []region, minSeconds float64) []region {
	kept := regions[:0]
	for _, r := range regions {
		if r.end-r.start >= minSeconds {
			kept = append(kept, r)
		}
	}
	return kept
}
