package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"voxi/internal/app/engine"
)

// DefaultSampleRate is the rate every input is resampled to; the
// transcription engines expect 16 kHz mono.
const DefaultSampleRate = 16000

// FFmpegDecoder decodes arbitrary audio containers into a normalized
// mono float waveform by shelling out to ffmpeg/ffprobe.
type FFmpegDecoder struct {
	sampleRate int
	log        *zap.Logger
}

// NewFFmpegDecoder creates a decoder producing waveforms at the given
// sample rate (DefaultSampleRate when zero).
func NewFFmpegDecoder(sampleRate int, log *zap.Logger) *FFmpegDecoder {
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FFmpegDecoder{sampleRate: sampleRate, log: log}
}

// Decode reads filePath and returns a mono waveform normalized to ±1.0.
func (d *FFmpegDecoder) Decode(ctx context.Context, filePath string) (*engine.Waveform, error) {
	channels, err := probeChannels(ctx, filePath)
	if err != nil {
		// Channel count is informational; decoding below still fails
		// loudly on a broken file.
		d.log.Debug("ffprobe channel query failed", zap.Error(err))
		channels = 1
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", filePath,
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"-ac", "1",
		"-ar", strconv.Itoa(d.sampleRate),
		"-v", "error",
		"pipe:1",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	raw := stdout.Bytes()
	samples := make([]float32, len(raw)/4)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("ffmpeg decode: no audio samples in %s", filePath)
	}

	return &engine.Waveform{
		Samples:    samples,
		SampleRate: d.sampleRate,
		Channels:   channels,
		Duration:   float64(len(samples)) / float64(d.sampleRate),
	}, nil
}

// Duration returns the container duration in seconds via ffprobe.
func Duration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
}

func probeChannels(ctx context.Context, filePath string) (int, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=channels",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(output)))
}
