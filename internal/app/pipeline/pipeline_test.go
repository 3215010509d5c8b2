package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voxi/internal/app/engine"
)

func TestProcess(t *testing.T) {
	const rate = 10

	t.Run("full_run", func(t *testing.T) {
		waveform := makeWaveform(12, rate)
		decoder := &fakeDecoder{waveform: waveform}
		diarizer := &fakeDiarizer{turns: []engine.Turn{
			{Speaker: "spk_1", Start: 0, End: 5},
			{Speaker: "spk_1", Start: 5, End: 8},
			{Speaker: "spk_2", Start: 8, End: 12},
		}}
		transcriber := &fakeTranscriber{
			recognitions: map[int]engine.Recognition{
				0:  {Text: "hello", Language: "en", Confidence: 0.9},
				50: {Text: "there", Language: "en", Confidence: 0.9},
				80: {Text: "hi", Language: "en", Confidence: 0.9},
			},
		}
		translator := &fakeTranslator{}
		p := New(decoder, diarizer, transcriber, translator, DefaultConfig(), zap.NewNop(), nil)

		result, err := p.Process(context.Background(), "talk.wav", Options{Translate: true})
		require.NoError(t, err)

		require.Len(t, result.Segments, 2)
		assert.Equal(t, "Speaker A", result.Segments[0].SpeakerLabel)
		assert.Equal(t, 0.0, result.Segments[0].Start)
		assert.Equal(t, 8.0, result.Segments[0].End)
		assert.Equal(t, "hello there", result.Segments[0].Text)
		assert.Equal(t, "Speaker B", result.Segments[1].SpeakerLabel)
		assert.Equal(t, "hi", result.Segments[1].Text)

		assert.Equal(t, "hello there hi", result.Transcript)
		assert.Equal(t, "en", result.Language)
		assert.Equal(t, "hello there hi", result.Translation)
		// An all-English recording must never reach the translator.
		assert.Empty(t, translator.batchLangs)
		assert.Empty(t, translator.docLangs)
	})

	t.Run("idempotent_for_same_input", func(t *testing.T) {
		waveform := makeWaveform(6, rate)
		decoder := &fakeDecoder{waveform: waveform}
		diarizer := &fakeDiarizer{turns: []engine.Turn{
			{Speaker: "a", Start: 0, End: 3},
			{Speaker: "b", Start: 3, End: 6},
		}}
		transcriber := &fakeTranscriber{
			recognitions: map[int]engine.Recognition{
				0:  {Text: "bonjour", Language: "fr", Confidence: 0.8},
				30: {Text: "salut", Language: "fr", Confidence: 0.8},
			},
		}
		p := New(decoder, diarizer, transcriber, &fakeTranslator{}, DefaultConfig(), zap.NewNop(), nil)

		first, err := p.Process(context.Background(), "talk.wav", Options{Translate: true})
		require.NoError(t, err)
		second, err := p.Process(context.Background(), "talk.wav", Options{Translate: true})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("decode_failure_is_fatal", func(t *testing.T) {
		p := New(&fakeDecoder{err: assert.AnError}, nil, nil, nil, DefaultConfig(), zap.NewNop(), nil)

		_, err := p.Process(context.Background(), "missing.wav", Options{})
		assert.Error(t, err)
	})

	t.Run("diarization_failure_is_fatal", func(t *testing.T) {
		decoder := &fakeDecoder{waveform: makeWaveform(2, rate)}
		p := New(decoder, &fakeDiarizer{err: assert.AnError}, nil, nil, DefaultConfig(), zap.NewNop(), nil)

		_, err := p.Process(context.Background(), "talk.wav", Options{})
		assert.Error(t, err)
	})

	t.Run("degenerate_turns_dropped", func(t *testing.T) {
		decoder := &fakeDecoder{waveform: makeWaveform(6, rate)}
		diarizer := &fakeDiarizer{turns: []engine.Turn{
			{Speaker: "a", Start: 2, End: 2},
			{Speaker: "a", Start: 4, End: 3},
			{Speaker: "b", Start: 0, End: 6},
		}}
		transcriber := &fakeTranscriber{
			recognitions: map[int]engine.Recognition{
				0: {Text: "only turn", Language: "en", Confidence: 0.9},
			},
		}
		p := New(decoder, diarizer, transcriber, nil, DefaultConfig(), zap.NewNop(), nil)

		result, err := p.Process(context.Background(), "talk.wav", Options{})
		require.NoError(t, err)
		require.Len(t, result.Segments, 1)
		assert.Equal(t, "only turn", result.Segments[0].Text)
	})

	t.Run("no_speech_yields_empty_result", func(t *testing.T) {
		decoder := &fakeDecoder{waveform: makeWaveform(2, rate)}
		diarizer := &fakeDiarizer{}
		p := New(decoder, diarizer, &fakeTranscriber{}, nil, DefaultConfig(), zap.NewNop(), nil)

		result, err := p.Process(context.Background(), "silence.wav", Options{Translate: true})
		require.NoError(t, err)
		assert.Empty(t, result.Segments)
		assert.Equal(t, "", result.Transcript)
		assert.Equal(t, "unknown", result.Language)
		assert.Equal(t, "", result.Translation)
	})
}
