package energy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxi/internal/app/engine"
)

// buildWaveform alternates speech (constant amplitude) and silence per
// the given (voiced, seconds) schedule.
func buildWaveform(sampleRate int, schedule ...struct {
	voiced  bool
	seconds float64
}) *engine.Waveform {
	var samples []float32
	for _, part := range schedule {
		n := int(part.seconds * float64(sampleRate))
		amp := float32(0)
		if part.voiced {
			amp = 0.5
		}
		for i := 0; i < n; i++ {
			samples = append(samples, amp)
		}
	}
	return &engine.Waveform{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   1,
		Duration:   float64(len(samples)) / float64(sampleRate),
	}
}

func part(voiced bool, seconds float64) struct {
	voiced  bool
	seconds float64
} {
	return struct {
		voiced  bool
		seconds float64
	}{voiced, seconds}
}

func TestDiarize(t *testing.T) {
	d := NewDiarizer()

	t.Run("alternates_speakers_across_long_gaps", func(t *testing.T) {
		waveform := buildWaveform(1000,
			part(true, 2), part(false, 2), part(true, 2))

		turns, err := d.Diarize(context.Background(), waveform)
		require.NoError(t, err)
		require.Len(t, turns, 2)

		assert.Equal(t, "SPEAKER_00", turns[0].Speaker)
		assert.Equal(t, "SPEAKER_01", turns[1].Speaker)
		assert.InDelta(t, 0.0, turns[0].Start, 0.1)
		assert.InDelta(t, 2.0, turns[0].End, 0.1)
		assert.InDelta(t, 4.0, turns[1].Start, 0.1)
	})

	t.Run("short_gap_keeps_same_speaker", func(t *testing.T) {
		waveform := buildWaveform(1000,
			part(true, 2), part(false, 0.8), part(true, 2))

		turns, err := d.Diarize(context.Background(), waveform)
		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, turns[0].Speaker, turns[1].Speaker)
	})

	t.Run("short_blips_dropped", func(t *testing.T) {
		waveform := buildWaveform(1000,
			part(true, 2), part(false, 2), part(true, 0.1))

		turns, err := d.Diarize(context.Background(), waveform)
		require.NoError(t, err)
		require.Len(t, turns, 1)
	})

	t.Run("monotonic_non_overlapping_output", func(t *testing.T) {
		waveform := buildWaveform(1000,
			part(true, 1), part(false, 2), part(true, 1), part(false, 2), part(true, 1))

		turns, err := d.Diarize(context.Background(), waveform)
		require.NoError(t, err)
		require.Len(t, turns, 3)
		for i := 1; i < len(turns); i++ {
			assert.GreaterOrEqual(t, turns[i].Start, turns[i-1].End)
		}
	})

	t.Run("empty_waveform_errors", func(t *testing.T) {
		_, err := d.Diarize(context.Background(), &engine.Waveform{SampleRate: 1000})
		assert.Error(t, err)
	})
}
