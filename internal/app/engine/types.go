package engine

// Waveform is a decoded, normalized (±1.0 float) mono or multi-channel
// audio signal.
type Waveform struct {
	Samples    []float32
	SampleRate int
	Channels   int
	Duration   float64
}

// Window is a slice of a waveform handed to a transcriber.
type Window struct {
	Samples    []float32
	SampleRate int
}

// Seconds returns the window length in seconds.
func (w Window) Seconds() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Slice extracts the samples between start and end seconds, clamped to
// the waveform bounds. The returned window may be empty when the range
// lies entirely outside the waveform.
func (w *Waveform) Slice(start, end float64) Window {
	lo := int(start * float64(w.SampleRate))
	hi := int(end * float64(w.SampleRate))
	if lo < 0 {
		lo = 0
	}
	if hi > len(w.Samples) {
		hi = len(w.Samples)
	}
	if lo >= hi {
		return Window{SampleRate: w.SampleRate}
	}
	return Window{Samples: w.Samples[lo:hi], SampleRate: w.SampleRate}
}

// Turn is one diarized speaker interval.
type Turn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Recognition is the result of transcribing one window.
type Recognition struct {
	Text       string
	Language   string
	Confidence float64
}

// LanguageGuess is a language detection result with its confidence.
type LanguageGuess struct {
	Code       string
	Confidence float64
}
