package engine

import (
	"context"
)

// Decoder turns an audio file into a normalized waveform. Decoding is
// delegated entirely to the implementation (ffmpeg in production).
type Decoder interface {
	Decode(ctx context.Context, filePath string) (*Waveform, error)
}

// Diarizer partitions a waveform into ordered speaker turns. Turn speaker
// ids are opaque and only stable within a single file.
type Diarizer interface {
	Diarize(ctx context.Context, waveform *Waveform) ([]Turn, error)
}

// Transcriber recognizes speech in one audio window. An empty language
// hint lets the engine auto-detect.
type Transcriber interface {
	Transcribe(ctx context.Context, window Window, languageHint string) (*Recognition, error)

	// DetectLanguage estimates the spoken language of a window without
	// requiring a full transcription result to be kept.
	DetectLanguage(ctx context.Context, window Window) (*LanguageGuess, error)
}

// Translator translates text into English. Implementations are expected
// to be expensive to warm up per source language, which is why the
// pipeline batches per-language calls.
type Translator interface {
	Translate(ctx context.Context, text string, sourceLang string) (string, error)

	// TranslateBatch translates texts in order. The returned slice has
	// exactly one entry per input text.
	TranslateBatch(ctx context.Context, texts []string, sourceLang string) ([]string, error)
}
