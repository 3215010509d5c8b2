package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"voxi/internal/app/engine"
)

// makeWaveform builds a waveform whose sample values equal their index,
// so a window's first sample identifies where it was cut from.
func makeWaveform(durationSec float64, sampleRate int) *engine.Waveform {
	n := int(durationSec * float64(sampleRate))
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(i)
	}
	return &engine.Waveform{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   1,
		Duration:   durationSec,
	}
}

// windowKey identifies a window by its first sample value.
func windowKey(w engine.Window) int {
	if len(w.Samples) == 0 {
		return -1
	}
	return int(w.Samples[0])
}

type fakeDecoder struct {
	waveform *engine.Waveform
	err      error
}

func (d *fakeDecoder) Decode(ctx context.Context, filePath string) (*engine.Waveform, error) {
	return d.waveform, d.err
}

type fakeDiarizer struct {
	turns []engine.Turn
	err   error
}

func (d *fakeDiarizer) Diarize(ctx context.Context, waveform *engine.Waveform) ([]engine.Turn, error) {
	return d.turns, d.err
}

type fakeTranscriber struct {
	mu sync.Mutex

	// recognitions maps a window key to its result.
	recognitions map[int]engine.Recognition
	failAt       map[int]bool
	guess        *engine.LanguageGuess
	guessErr     error
	hints        []string
}

func (t *fakeTranscriber) Transcribe(ctx context.Context, window engine.Window, languageHint string) (*engine.Recognition, error) {
	t.mu.Lock()
	t.hints = append(t.hints, languageHint)
	t.mu.Unlock()

	key := windowKey(window)
	if t.failAt[key] {
		return nil, fmt.Errorf("engine failure at window %d", key)
	}
	rec, ok := t.recognitions[key]
	if !ok {
		return &engine.Recognition{}, nil
	}
	return &rec, nil
}

func (t *fakeTranscriber) DetectLanguage(ctx context.Context, window engine.Window) (*engine.LanguageGuess, error) {
	return t.guess, t.guessErr
}

type fakeTranslator struct {
	mu sync.Mutex

	batchLangs  []string
	batchSizes  []int
	docLangs    []string
	batchErr    error
	docErr      error
	shortBatch  bool
	emptyDocFor map[string]bool
}

func (t *fakeTranslator) Translate(ctx context.Context, text string, sourceLang string) (string, error) {
	t.mu.Lock()
	t.docLangs = append(t.docLangs, sourceLang)
	t.mu.Unlock()
	if t.docErr != nil {
		return "", t.docErr
	}
	if t.emptyDocFor[sourceLang] {
		return "", nil
	}
	return "[" + sourceLang + "->en] " + text, nil
}

func (t *fakeTranslator) TranslateBatch(ctx context.Context, texts []string, sourceLang string) ([]string, error) {
	t.mu.Lock()
	t.batchLangs = append(t.batchLangs, sourceLang)
	t.batchSizes = append(t.batchSizes, len(texts))
	t.mu.Unlock()
	if t.batchErr != nil {
		return nil, t.batchErr
	}
	if t.shortBatch {
		return texts[:len(texts)-1], nil
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = strings.ToUpper(text)
	}
	return out, nil
}
